// Package cardfile reads card template files and writes hand catalogs in the
// JSON layout the card tooling has always used.
package cardfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nmjl-service/internal/card"
	appErr "nmjl-service/pkg/errors"
)

// Text accepts a JSON string or number. Card files write group ids and
// constraint values both ways ("Group": 1, "Constraint_Values": 2025).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// Int accepts a JSON number or a numeric string.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	s := strings.TrimSpace(string(t))
	if s == "" {
		*i = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	*i = Int(n)
	return nil
}

type GroupRecord struct {
	Group            Text   `json:"Group"`
	ConstraintType   string `json:"Constraint_Type"`
	ConstraintValues Text   `json:"Constraint_Values"`
	SuitRole         string `json:"Suit_Role,omitempty"`
	JokersAllowed    *bool  `json:"Jokers_Allowed,omitempty"`
	MustMatch        Text   `json:"Constraint_Must_Match,omitempty"`
}

type TemplateRecord struct {
	PatternID   Int           `json:"Pattern ID"`
	HandsKey    string        `json:"Hands_Key"`
	Section     string        `json:"Section"`
	Line        Int           `json:"Line"`
	Pattern     string        `json:"Hand_Pattern"`
	Description string        `json:"Hand_Description"`
	Points      Int           `json:"Hand_Points"`
	Difficulty  string        `json:"Hand_Difficulty"`
	Concealed   bool          `json:"Hand_Conceiled"`
	Groups      []GroupRecord `json:"Groups"`
}

func (g GroupRecord) toGroup() card.Group {
	role := card.SuitRole(strings.TrimSpace(g.SuitRole))
	if role == "" {
		role = card.RoleNone
	}
	jokers := true
	if g.JokersAllowed != nil {
		jokers = *g.JokersAllowed
	}
	return card.Group{
		ID:            string(g.Group),
		Type:          card.ConstraintType(strings.ToLower(strings.TrimSpace(g.ConstraintType))),
		Values:        card.ParseDescriptor(string(g.ConstraintValues)),
		Role:          role,
		JokersAllowed: jokers,
		MustMatch:     strings.TrimSpace(string(g.MustMatch)),
	}
}

// Template converts the record into the engine's template.
func (r TemplateRecord) Template() card.Template {
	difficulty := r.Difficulty
	if difficulty == "" {
		difficulty = "unknown"
	}
	t := card.Template{
		Section:        r.Section,
		Line:           int(r.Line),
		PatternID:      int(r.PatternID),
		Key:            r.HandsKey,
		DisplayPattern: r.Pattern,
		Description:    r.Description,
		Points:         int(r.Points),
		Difficulty:     difficulty,
		Concealed:      r.Concealed,
		Groups:         make([]card.Group, 0, len(r.Groups)),
	}
	for _, g := range r.Groups {
		t.Groups = append(t.Groups, g.toGroup())
	}
	return t
}

// ReadTemplates decodes a JSON array of template records.
func ReadTemplates(r io.Reader) ([]card.Template, error) {
	var records []TemplateRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", appErr.ErrInvalidCardFile, err)
	}
	templates := make([]card.Template, 0, len(records))
	for i, rec := range records {
		if len(rec.Groups) == 0 {
			return nil, fmt.Errorf("%w: template %d (%s) has no groups", appErr.ErrInvalidCardFile, i, rec.HandsKey)
		}
		templates = append(templates, rec.Template())
	}
	return templates, nil
}

// LoadTemplates reads a card file and also returns its raw bytes, which
// callers hash into a card version.
func LoadTemplates(path string) ([]card.Template, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	templates, err := ReadTemplates(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return templates, data, nil
}
