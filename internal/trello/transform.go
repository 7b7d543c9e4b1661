package trello

import (
	"sort"
	"strings"
	"time"

	"github.com/goalboard/goalboard/internal/entities"
	"github.com/goalboard/goalboard/internal/links"
)

// TransformCards builds one normalized task per open card, ordered by
// position within its (non-closed) list. Classification and enrichment
// fields are left unset.
func TransformCards(doc *Document) []entities.Task {
	cardsByList := make(map[string][]Card)
	for _, card := range doc.Export.Cards {
		if card.Closed {
			continue
		}
		cardsByList[card.IDList] = append(cardsByList[card.IDList], card)
	}

	var tasks []entities.Task
	for _, list := range doc.OpenLists {
		cards := cardsByList[list.ID]
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Pos < cards[j].Pos })
		for _, card := range cards {
			tasks = append(tasks, buildTask(card, list, doc))
		}
	}
	return tasks
}

func buildTask(card Card, list List, doc *Document) entities.Task {
	task := entities.Task{
		ExternalID:  card.ID,
		Text:        card.Name,
		Category:    normalizeCategory(list.Name),
		Description: card.Desc,
		Position:    card.Pos,
		ContentKind: entities.ContentKindUnknown,
	}

	if ts, err := time.Parse(time.RFC3339, card.Due); err == nil {
		task.DueDate = &ts
	}
	if ts, err := time.Parse(time.RFC3339, card.Start); err == nil {
		task.StartDate = &ts
	}

	for _, label := range card.Labels {
		name := label.Name
		if name == "" {
			name = label.Color
		}
		if name != "" {
			task.Labels = append(task.Labels, name)
		}
	}

	checklists := resolveChecklists(card, doc)
	task.Checklists = copyChecklists(checklists)
	for _, checklist := range task.Checklists {
		for _, item := range checklist.Items {
			task.ChecklistTotal++
			if item.Checked {
				task.ChecklistChecked++
			}
		}
	}

	linkAttachments := make([]Attachment, 0, len(card.Attachments))
	for _, attachment := range card.Attachments {
		if !attachment.IsUpload {
			linkAttachments = append(linkAttachments, attachment)
		}
	}
	if card.Cover != nil {
		task.CoverColor = card.Cover.Color
		if card.Cover.IDAttachment != "" {
			for _, attachment := range card.Attachments {
				if attachment.ID == card.Cover.IDAttachment {
					task.CoverImage = attachment.URL
					break
				}
			}
		}
	}

	for _, memberID := range card.IDMembers {
		if name, ok := doc.MemberNames[memberID]; ok && name != "" {
			task.Assignees = append(task.Assignees, name)
		}
	}

	for _, comment := range doc.CardComments[card.ID] {
		task.Comments = append(task.Comments, entities.TaskComment{
			Author:      comment.Author,
			Text:        comment.Text,
			CommentedAt: comment.Date,
		})
	}

	task.Links = extractTaskLinks(card, checklists, doc.CardComments[card.ID], linkAttachments)

	// A task counts as done when the card itself was completed, or every
	// checklist item is checked and there is at least one item.
	task.Checked = card.DueComplete ||
		(task.ChecklistTotal > 0 && task.ChecklistChecked == task.ChecklistTotal)

	return task
}

// extractTaskLinks gathers links from the five card sources in fixed order,
// deduplicating by URL as each source is processed. First occurrence wins.
func extractTaskLinks(card Card, checklists []Checklist, comments []Comment, linkAttachments []Attachment) []entities.ExtractedLink {
	seen := make(map[string]bool)
	var result []entities.ExtractedLink

	add := func(url, text string, source entities.LinkSource, checklistName string) {
		if url == "" || seen[url] {
			return
		}
		seen[url] = true
		result = append(result, entities.ExtractedLink{
			URL:           url,
			Text:          text,
			Source:        source,
			CardName:      card.Name,
			ChecklistName: checklistName,
		})
	}

	for _, link := range links.Extract(card.Name) {
		add(link.URL, link.Text, entities.LinkSourceName, "")
	}
	for _, link := range links.Extract(card.Desc) {
		add(link.URL, link.Text, entities.LinkSourceDescription, "")
	}
	for _, attachment := range linkAttachments {
		add(attachment.URL, attachment.Name, entities.LinkSourceAttachment, "")
	}
	for _, comment := range comments {
		for _, link := range links.Extract(comment.Text) {
			add(link.URL, link.Text, entities.LinkSourceComment, "")
		}
	}
	for _, checklist := range checklists {
		for _, item := range checklist.CheckItems {
			for _, link := range links.Extract(item.Name) {
				add(link.URL, link.Text, entities.LinkSourceChecklistItem, checklist.Name)
			}
		}
	}

	return result
}

// resolveChecklists returns the card's checklists via its direct reference
// list when present, otherwise via the idCard fallback map. Some export
// variants leave idChecklists empty while checklists still declare their
// owning card.
func resolveChecklists(card Card, doc *Document) []Checklist {
	var checklists []Checklist
	if len(card.IDChecklists) > 0 {
		for _, id := range card.IDChecklists {
			if checklist, ok := doc.Checklists[id]; ok {
				checklists = append(checklists, checklist)
			}
		}
	} else {
		checklists = append(checklists, doc.CardChecklists[card.ID]...)
	}
	sort.SliceStable(checklists, func(i, j int) bool { return checklists[i].Pos < checklists[j].Pos })
	return checklists
}

func copyChecklists(checklists []Checklist) []entities.Checklist {
	result := make([]entities.Checklist, 0, len(checklists))
	for _, checklist := range checklists {
		items := make([]CheckItem, len(checklist.CheckItems))
		copy(items, checklist.CheckItems)
		sort.SliceStable(items, func(i, j int) bool { return items[i].Pos < items[j].Pos })

		normalized := entities.Checklist{
			ExternalID: checklist.ID,
			Name:       checklist.Name,
			Position:   checklist.Pos,
			Items:      make([]entities.ChecklistItem, 0, len(items)),
		}
		for _, item := range items {
			normalized.Items = append(normalized.Items, entities.ChecklistItem{
				Text:     item.Name,
				Checked:  item.State == "complete",
				Position: item.Pos,
			})
		}
		result = append(result, normalized)
	}
	return result
}

// normalizeCategory lowercases a list name and collapses whitespace runs
// into underscores, e.g. "Want to Watch" → "want_to_watch".
func normalizeCategory(listName string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(listName)))
	return strings.Join(fields, "_")
}
