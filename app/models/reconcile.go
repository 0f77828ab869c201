package models

// TagChanges lists the association writes that move a post from its current
// tags to a newly submitted checked set.
type TagChanges struct {
	Add    []int
	Remove []int
}

// Empty reports whether no writes are needed.
func (c TagChanges) Empty() bool {
	return len(c.Add) == 0 && len(c.Remove) == 0
}

// ReconcileTags walks every tag in the system once. A checked tag with no
// association is added, an unchecked tag with an association is removed, and
// everything else is left alone, so applying the result twice is a no-op the
// second time. Checked ids that are not in all are ignored.
func ReconcileTags(all []*Tag, existing []*PostTag, checked map[int]bool) TagChanges {
	current := associatedTagIDs(existing)

	var changes TagChanges
	for _, tag := range all {
		switch {
		case checked[tag.ID] && !current[tag.ID]:
			changes.Add = append(changes.Add, tag.ID)
		case !checked[tag.ID] && current[tag.ID]:
			changes.Remove = append(changes.Remove, tag.ID)
		}
	}
	return changes
}

// SplitTags partitions all into the tags associated with a post and the rest.
// Order within each group follows all.
func SplitTags(all []*Tag, existing []*PostTag) (checked, unchecked []*Tag) {
	current := associatedTagIDs(existing)
	for _, tag := range all {
		if current[tag.ID] {
			checked = append(checked, tag)
		} else {
			unchecked = append(unchecked, tag)
		}
	}
	return checked, unchecked
}

// SelectTags returns the tags of all whose id is in ids, in the order of all.
func SelectTags(all []*Tag, ids map[int]bool) []*Tag {
	var selected []*Tag
	for _, tag := range all {
		if ids[tag.ID] {
			selected = append(selected, tag)
		}
	}
	return selected
}

func associatedTagIDs(existing []*PostTag) map[int]bool {
	ids := make(map[int]bool, len(existing))
	for _, pt := range existing {
		ids[pt.TagID] = true
	}
	return ids
}
