package content

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// LinkedSection is an existing schema-section link flattened for diffing,
// tagged with the schema that owns the link. Links inherited from a parent or
// sibling schema carry that schema's code.
type LinkedSection struct {
	LinkCode    string
	SchemaCode  string
	SectionCode string
	Name        string
	Content     string
	Order       int
}

// Section is an incoming content unit. Its order is its zero-based index in
// the incoming list.
type Section struct {
	Name    string
	Content string
}

// CreateOp makes a brand-new section and links it at Order.
type CreateOp struct {
	Name    string
	Content string
	Order   int
}

// ConnectOp adopts an existing section by reference at Order. No content is
// written; the target schema gains a link to a section owned elsewhere.
type ConnectOp struct {
	SectionCode string
	Order       int
}

// UpdateOp moves an existing link of the target schema to a new Order. The
// section content is unchanged.
type UpdateOp struct {
	LinkCode    string
	SectionCode string
	Order       int
}

// DeleteOp removes a link from the target schema. The section itself is kept.
type DeleteOp struct {
	LinkCode string
}

// UpdateGroups partitions the reconciliation of incoming sections against the
// existing links of a schema. Applying Delete, Connect, Update and Create to
// the target schema's link set yields exactly the incoming ordered content.
type UpdateGroups struct {
	Create  []CreateOp
	Connect []ConnectOp
	Update  []UpdateOp
	Delete  []DeleteOp
}

// Empty reports whether applying the groups would change nothing.
func (g UpdateGroups) Empty() bool {
	return len(g.Create) == 0 && len(g.Connect) == 0 && len(g.Update) == 0 && len(g.Delete) == 0
}

// ComputeSectionDiff reconciles incoming sections against the existing links
// of the target schema.
//
// Matching is greedy: each incoming section, in input order, takes the first
// remaining existing link with equal name and content, so duplicate content
// pairs up in insertion order. Each existing link is reused at most once.
// A matched link owned by another schema becomes a connect, a matched link of
// the target schema whose position moved becomes an update, and an unmatched
// incoming section becomes a create. Unmatched links of the target schema are
// deleted; unmatched links owned by other schemas are left alone.
func ComputeSectionDiff(targetSchemaCode string, existing []LinkedSection, incoming []Section) UpdateGroups {
	var groups UpdateGroups
	used := mapset.NewThreadUnsafeSet[int]()

	for order, in := range incoming {
		matched := -1
		for i, link := range existing {
			if used.Contains(i) {
				continue
			}
			if link.Name == in.Name && link.Content == in.Content {
				matched = i
				break
			}
		}

		if matched < 0 {
			groups.Create = append(groups.Create, CreateOp{
				Name:    in.Name,
				Content: in.Content,
				Order:   order,
			})
			continue
		}

		used.Add(matched)
		link := existing[matched]

		if link.SchemaCode != targetSchemaCode {
			groups.Connect = append(groups.Connect, ConnectOp{
				SectionCode: link.SectionCode,
				Order:       order,
			})
			continue
		}

		if link.Order != order {
			groups.Update = append(groups.Update, UpdateOp{
				LinkCode:    link.LinkCode,
				SectionCode: link.SectionCode,
				Order:       order,
			})
		}
	}

	for i, link := range existing {
		if used.Contains(i) || link.SchemaCode != targetSchemaCode {
			continue
		}
		groups.Delete = append(groups.Delete, DeleteOp{LinkCode: link.LinkCode})
	}

	return groups
}
