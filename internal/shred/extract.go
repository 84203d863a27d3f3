package shred

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/xmldoc"
)

// Row is one extracted entity occurrence with its typed field values.
// A field absent from every map failed coercion or was missing at source;
// the distinction is deliberately not kept (CoercionGap is silent).
type Row struct {
	ID       model.Identity
	ParentID model.Identity

	text  map[string]string
	ints  map[string]int
	dates map[string]model.Date
	bools map[string]bool
}

// Text returns a text or raw field; absent fields are the empty string.
func (r Row) Text(name string) string { return r.text[name] }

// Int returns an integer field, nil when absent.
func (r Row) Int(name string) *int {
	if v, ok := r.ints[name]; ok {
		return &v
	}
	return nil
}

// Date returns a date field, nil when absent.
func (r Row) Date(name string) *model.Date {
	if v, ok := r.dates[name]; ok {
		return &v
	}
	return nil
}

// Bool returns a boolean field, nil when absent.
func (r Row) Bool(name string) *bool {
	if v, ok := r.bools[name]; ok {
		return &v
	}
	return nil
}

// extract runs one spec against the document. Rows whose parent location
// does not resolve are dropped, matching the join semantics: structural
// orphans are not the shredder's problem to report.
func extract(doc *xmldoc.Document, spec Spec) ([]Row, error) {
	sel, err := xmldoc.CompileSelect(spec.Path)
	if err != nil {
		return nil, err
	}
	nodes := doc.SelectCompiled(sel)
	rows := make([]Row, 0, len(nodes))
	for _, n := range nodes {
		parent, ok := n.Resolve(spec.ParentLoc)
		if !ok {
			continue
		}
		row := Row{
			ID:       model.Identity(n.Identity()),
			ParentID: model.Identity(parent.Identity()),
			text:     make(map[string]string),
			ints:     make(map[string]int),
			dates:    make(map[string]model.Date),
			bools:    make(map[string]bool),
		}
		for _, f := range spec.Fields {
			raw, present := n.Value(f.Loc)
			if !present {
				continue
			}
			coerce(&row, f, raw)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// coerce applies the field's kind. Failures leave the field absent.
func coerce(row *Row, f Field, raw string) {
	switch f.Kind {
	case KindRaw:
		row.text[f.Name] = raw
	case KindText:
		row.text[f.Name] = norm.NFC.String(strings.TrimSpace(raw))
	case KindInt:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		row.ints[f.Name] = v
	case KindDate:
		d, err := model.ParseDate(strings.TrimSpace(raw))
		if err != nil {
			return
		}
		row.dates[f.Name] = d
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			row.bools[f.Name] = true
		case "false", "0":
			row.bools[f.Name] = false
		}
	}
}

// resolveWrapper rewrites each leaf row's parent reference from the wrapper
// element to the wrapper's own parent, the entity the leaf really belongs
// to. Leaves whose wrapper is unknown are dropped. This is the indirection
// join shared by disabilities, assessment factors and plan reviews.
func resolveWrapper(wrappers, leaves []Row) []Row {
	parentOf := make(map[model.Identity]model.Identity, len(wrappers))
	for _, w := range wrappers {
		parentOf[w.ID] = w.ParentID
	}
	out := make([]Row, 0, len(leaves))
	for _, leaf := range leaves {
		grand, ok := parentOf[leaf.ParentID]
		if !ok {
			continue
		}
		leaf.ParentID = grand
		out = append(out, leaf)
	}
	return out
}
