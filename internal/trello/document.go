// Package trello parses static Trello board exports into the goalboard task model.
package trello

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Export mirrors the Trello board export document. Every field except the
// top-level lists and cards collections is optional; absent fields decode to
// zero values and are handled with safe defaults downstream.
type Export struct {
	Name       string       `json:"name"`
	URL        string       `json:"url"`
	Prefs      *Prefs       `json:"prefs"`
	Lists      []List       `json:"lists"`
	Cards      []Card       `json:"cards"`
	Checklists []Checklist  `json:"checklists"`
	Members    []Member     `json:"members"`
	Actions    []Action     `json:"actions"`
}

type Prefs struct {
	BackgroundImage       string        `json:"backgroundImage"`
	BackgroundImageScaled []ScaledImage `json:"backgroundImageScaled"`
}

type ScaledImage struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

type List struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Closed bool    `json:"closed"`
	Pos    float64 `json:"pos"`
}

type Card struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Desc         string       `json:"desc"`
	IDList       string       `json:"idList"`
	Due          string       `json:"due"`
	DueComplete  bool         `json:"dueComplete"`
	Start        string       `json:"start"`
	Closed       bool         `json:"closed"`
	Pos          float64      `json:"pos"`
	Labels       []Label      `json:"labels"`
	IDMembers    []string     `json:"idMembers"`
	IDChecklists []string     `json:"idChecklists"`
	Cover        *Cover       `json:"cover"`
	Attachments  []Attachment `json:"attachments"`
}

type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Cover struct {
	Color        string `json:"color"`
	IDAttachment string `json:"idAttachment"`
}

type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	IsUpload bool   `json:"isUpload"`
}

type Checklist struct {
	ID         string      `json:"id"`
	IDCard     string      `json:"idCard"`
	Name       string      `json:"name"`
	Pos        float64     `json:"pos"`
	CheckItems []CheckItem `json:"checkItems"`
}

type CheckItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State string  `json:"state"` // "complete" or "incomplete"
	Pos   float64 `json:"pos"`
}

type Member struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type Action struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	Date          string     `json:"date"`
	MemberCreator *Member    `json:"memberCreator"`
	Data          ActionData `json:"data"`
}

type ActionData struct {
	Text string      `json:"text"`
	Card *ActionCard `json:"card"`
}

type ActionCard struct {
	ID string `json:"id"`
}

// Comment is a card comment pulled from the export's timeline actions.
type Comment struct {
	Author string
	Text   string
	Date   time.Time
}

// Document is a validated, indexed view over a board export. All lookups the
// card transformer needs are precomputed here so the transform itself stays a
// single pass.
type Document struct {
	Export *Export

	// OpenLists holds non-closed lists ordered by position.
	OpenLists []List

	ListNames      map[string]string      // list id → name
	Checklists     map[string]Checklist   // checklist id → checklist
	CardChecklists map[string][]Checklist // card id → checklists (fallback via idCard)
	MemberNames    map[string]string      // member id → display name
	CardComments   map[string][]Comment   // card id → comments in document order
}

// ParseDocument decodes raw export JSON and indexes it.
func ParseDocument(data []byte) (*Document, error) {
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode board export: %w; export your board as JSON from Trello", err)
	}
	return NewDocument(&export)
}

// NewDocument validates an export and builds the lookup maps. Missing lists
// or cards collections are the only hard failures; everything else defaults.
func NewDocument(export *Export) (*Document, error) {
	if export.Lists == nil {
		return nil, fmt.Errorf("board export has no lists collection; export your board as JSON from Trello")
	}
	if export.Cards == nil {
		return nil, fmt.Errorf("board export has no cards collection; export your board as JSON from Trello")
	}

	doc := &Document{
		Export:         export,
		ListNames:      make(map[string]string, len(export.Lists)),
		Checklists:     make(map[string]Checklist, len(export.Checklists)),
		CardChecklists: make(map[string][]Checklist),
		MemberNames:    make(map[string]string, len(export.Members)),
		CardComments:   make(map[string][]Comment),
	}

	for _, list := range export.Lists {
		doc.ListNames[list.ID] = list.Name
		if !list.Closed {
			doc.OpenLists = append(doc.OpenLists, list)
		}
	}
	sort.SliceStable(doc.OpenLists, func(i, j int) bool {
		return doc.OpenLists[i].Pos < doc.OpenLists[j].Pos
	})

	for _, checklist := range export.Checklists {
		doc.Checklists[checklist.ID] = checklist
		if checklist.IDCard != "" {
			doc.CardChecklists[checklist.IDCard] = append(doc.CardChecklists[checklist.IDCard], checklist)
		}
	}

	for _, member := range export.Members {
		name := member.FullName
		if name == "" {
			name = member.Username
		}
		doc.MemberNames[member.ID] = name
	}

	for _, action := range export.Actions {
		if action.Type != "commentCard" || action.Data.Card == nil {
			continue
		}
		comment := Comment{Text: action.Data.Text}
		if action.MemberCreator != nil {
			comment.Author = action.MemberCreator.FullName
			if comment.Author == "" {
				comment.Author = action.MemberCreator.Username
			}
		}
		if ts, err := time.Parse(time.RFC3339, action.Date); err == nil {
			comment.Date = ts
		}
		doc.CardComments[action.Data.Card.ID] = append(doc.CardComments[action.Data.Card.ID], comment)
	}

	return doc, nil
}

// BackgroundImage resolves the board background, preferring the largest
// pre-scaled variant over the default image field.
func (d *Document) BackgroundImage() string {
	if d.Export.Prefs == nil {
		return ""
	}
	prefs := d.Export.Prefs

	var best ScaledImage
	for _, scaled := range prefs.BackgroundImageScaled {
		if scaled.URL != "" && scaled.Width >= best.Width {
			best = scaled
		}
	}
	if best.URL != "" {
		return best.URL
	}
	return prefs.BackgroundImage
}
