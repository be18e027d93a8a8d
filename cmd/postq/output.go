package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mvannatta/postqueue/internal/model"
	"github.com/mvannatta/postqueue/internal/ui"
)

const timeLayout = "2006-01-02 15:04:05"

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printPostTable(p *model.Post) {
	fmt.Printf("ID:           %s\n", ui.RenderAccent(p.ID))
	fmt.Printf("Platform:     %s\n", p.Platform)
	fmt.Printf("Status:       %s\n", ui.RenderStatus(string(p.Status)))
	fmt.Printf("Owner:        %s\n", p.Owner)
	if p.Content.Title != "" {
		fmt.Printf("Title:        %s\n", p.Content.Title)
	}
	if p.Content.Subreddit != "" {
		fmt.Printf("Subreddit:    %s\n", p.Content.Subreddit)
	}
	if p.Content.Visibility != "" {
		fmt.Printf("Visibility:   %s\n", p.Content.Visibility)
	}
	fmt.Printf("Text:         %s\n", p.Content.Text)
	if len(p.Content.MediaURLs) > 0 {
		fmt.Printf("Media:        %s\n", strings.Join(p.Content.MediaURLs, ", "))
	}
	if p.CampaignID != "" {
		fmt.Printf("Campaign:     %s\n", p.CampaignID)
	}
	if p.ProjectID != "" {
		fmt.Printf("Project:      %s\n", p.ProjectID)
	}
	if p.ScheduledAt != nil {
		fmt.Printf("Scheduled At: %s\n", p.ScheduledAt.Local().Format(timeLayout))
	}
	if p.PublishedAt != nil {
		fmt.Printf("Published At: %s\n", p.PublishedAt.Local().Format(timeLayout))
	}
	fmt.Printf("Created At:   %s\n", p.CreatedAt.Local().Format(timeLayout))
	fmt.Printf("Updated At:   %s\n", p.UpdatedAt.Local().Format(timeLayout))
}

func printPostListTable(posts []*model.Post, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPLATFORM\tSCHEDULED\tTEXT")
	for _, p := range posts {
		scheduled := ""
		if p.ScheduledAt != nil {
			scheduled = p.ScheduledAt.Local().Format(timeLayout)
		}
		text := p.Content.Text
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			ui.RenderStatus(string(p.Status)),
			p.Platform,
			scheduled,
			text,
		)
	}
	w.Flush()
	fmt.Printf("\n%d posts (%d total)\n", len(posts), total)
}

func printCampaignTable(c *model.Campaign) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(c.ID))
	fmt.Printf("Name:        %s\n", c.Name)
	if c.Description != "" {
		fmt.Printf("Description: %s\n", c.Description)
	}
	if c.ProjectID != "" {
		fmt.Printf("Project:     %s\n", c.ProjectID)
	}
	if c.StartsAt != nil {
		fmt.Printf("Starts At:   %s\n", c.StartsAt.Local().Format(timeLayout))
	}
	if c.EndsAt != nil {
		fmt.Printf("Ends At:     %s\n", c.EndsAt.Local().Format(timeLayout))
	}
	fmt.Printf("Created At:  %s\n", c.CreatedAt.Local().Format(timeLayout))
}

func printCampaignListTable(campaigns []*model.Campaign) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROJECT\tSTARTS\tENDS")
	for _, c := range campaigns {
		starts, ends := "", ""
		if c.StartsAt != nil {
			starts = c.StartsAt.Local().Format("2006-01-02")
		}
		if c.EndsAt != nil {
			ends = c.EndsAt.Local().Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.ProjectID, starts, ends)
	}
	w.Flush()
	fmt.Printf("\n%d campaigns\n", len(campaigns))
}

func printProjectListTable(projects []*model.Project) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, p := range projects {
		desc := p.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, desc)
	}
	w.Flush()
	fmt.Printf("\n%d projects\n", len(projects))
}

func printDraftTable(d *model.BlogDraft) {
	fmt.Printf("ID:         %s\n", ui.RenderAccent(d.ID))
	fmt.Printf("Title:      %s\n", d.Title)
	fmt.Printf("Published:  %t\n", d.Published)
	if len(d.Tags) > 0 {
		fmt.Printf("Tags:       %s\n", strings.Join(d.Tags, ", "))
	}
	if d.ProjectID != "" {
		fmt.Printf("Project:    %s\n", d.ProjectID)
	}
	if d.Body != "" {
		fmt.Printf("\n%s\n", d.Body)
	}
}

func printDraftListTable(drafts []*model.BlogDraft) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPUBLISHED\tTAGS\tTITLE")
	for _, d := range drafts {
		title := d.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%t\t%s\t%s\n", d.ID, d.Published, strings.Join(d.Tags, ","), title)
	}
	w.Flush()
	fmt.Printf("\n%d drafts\n", len(drafts))
}

func printEventListTable(events []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTOPIC\tACTOR")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.Local().Format(timeLayout), e.Topic, e.Actor)
	}
	w.Flush()
}
