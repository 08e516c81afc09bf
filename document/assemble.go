package document

import "strings"

// ResolveBlocks finds the ordered block list in arbitrarily shaped root
// value. First matching rule wins:
//
//  1. bare string - single paragraph
//  2. root.document.blocks array
//  3. root.blocks array
//  4. root is an array
//  5. root has type and any of content, items, rows - root is a block
//  6. root.content array
//  7. title and/or summary strings - heading and paragraph; otherwise all
//     top-level string fields joined into one paragraph; otherwise nothing
func ResolveBlocks(root any) []any {
	switch t := root.(type) {
	case string:
		return []any{ObjectOf("type", string(BlockParagraph), "content", t)}
	case []any:
		return t
	case *Object:
		return resolveObject(t)
	}
	return nil
}

func resolveObject(root *Object) []any {
	if blocks, ok := root.Object("document").Array("blocks"); ok {
		return blocks
	}
	if blocks, ok := root.Array("blocks"); ok {
		return blocks
	}
	if root.Has("type") && (root.Has("content") || root.Has("items") || root.Has("rows")) {
		return []any{root}
	}
	if content, ok := root.Array("content"); ok {
		return content
	}

	title, hasTitle := root.String("title")
	summary, hasSummary := root.String("summary")
	if hasTitle || hasSummary {
		var res []any
		if hasTitle {
			res = append(res, ObjectOf("type", string(BlockHeading), "level", 1, "content", title))
		}
		if hasSummary {
			res = append(res, ObjectOf("type", string(BlockParagraph), "content", summary))
		}
		return res
	}

	var texts []string
	for _, k := range root.keys {
		if s, ok := root.values[k].(string); ok {
			texts = append(texts, s)
		}
	}
	if len(texts) == 0 {
		return nil
	}
	return []any{ObjectOf("type", string(BlockParagraph), "content", strings.Join(texts, " "))}
}
