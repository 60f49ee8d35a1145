package dialect

import (
	"strconv"

	"github.com/vuuvv/errors"

	"github.com/avlink/mavdialect/enum"
	"github.com/avlink/mavdialect/errs"
	"github.com/avlink/mavdialect/internal/util"
	"github.com/avlink/mavdialect/message"
)

func identity[T comparable](v T) T { return v }

// Merge combines independently compiled dialects into one codec table. Any
// overlap between two dialects' enum keys, message ids, or message names
// is a fatal conflict — there is no precedence rule, no "last one wins": a
// dialect set that can't be merged cleanly fails closed (spec.md §4.6).
func Merge(dialects ...*Dialect) (*MergedDialect, error) {
	out := &Dialect{
		Name:        "merged",
		Enums:       &enum.Result{EntryToValue: map[string]int{}, Groups: map[string]*enum.Group{}},
		Messages:    map[string]*message.Message{},
		MessageByID: map[int]*message.Message{},
	}

	for _, d := range dialects {
		if err := mergeEnums(out.Enums, d); err != nil {
			return nil, err
		}
		if err := mergeMessages(out, d); err != nil {
			return nil, err
		}
		if d.Descriptions != nil {
			mergeDescriptions(out, d.Descriptions)
		}
	}

	return out, nil
}

func mergeEnums(acc *enum.Result, d *Dialect) error {
	accEntries := stringKeys(acc.EntryToValue)
	newEntries := stringKeys(d.Enums.EntryToValue)
	if _, _, conflicts := util.DifferenceBy(accEntries, newEntries, identity[string]); len(conflicts) > 0 {
		return errors.WithStack(&errs.MergeConflict{Kind: errs.ConflictEnum, Items: conflicts, Source: d.Name})
	}
	accGroups := mapKeys(acc.Groups)
	newGroups := mapKeys(d.Enums.Groups)
	if _, _, conflicts := util.DifferenceBy(accGroups, newGroups, identity[string]); len(conflicts) > 0 {
		return errors.WithStack(&errs.MergeConflict{Kind: errs.ConflictEnum, Items: conflicts, Source: d.Name})
	}

	for k, v := range d.Enums.EntryToValue {
		acc.EntryToValue[k] = v
	}
	for k, v := range d.Enums.Groups {
		acc.Groups[k] = v
	}
	return nil
}

func mergeMessages(acc *Dialect, d *Dialect) error {
	accIDs := intKeys(acc.MessageByID)
	newIDs := intKeys(d.MessageByID)
	if _, _, conflicts := util.DifferenceBy(accIDs, newIDs, identity[int]); len(conflicts) > 0 {
		items := make([]string, len(conflicts))
		for i, id := range conflicts {
			items[i] = strconv.Itoa(id)
		}
		return errors.WithStack(&errs.MergeConflict{Kind: errs.ConflictMessageId, Items: items, Source: d.Name})
	}
	accNames := mapKeys(acc.Messages)
	newNames := mapKeys(d.Messages)
	if _, _, conflicts := util.DifferenceBy(accNames, newNames, identity[string]); len(conflicts) > 0 {
		return errors.WithStack(&errs.MergeConflict{Kind: errs.ConflictMessageName, Items: conflicts, Source: d.Name})
	}

	for k, v := range d.Messages {
		acc.Messages[k] = v
	}
	for id, v := range d.MessageByID {
		acc.MessageByID[id] = v
	}
	return nil
}

func mergeDescriptions(acc *Dialect, d *Descriptions) {
	if acc.Descriptions == nil {
		acc.Descriptions = newDescriptions()
	}
	for k, v := range d.EnumGroups {
		acc.Descriptions.EnumGroups[k] = v
	}
	for k, v := range d.EnumEntries {
		acc.Descriptions.EnumEntries[k] = v
	}
	for k, v := range d.Messages {
		acc.Descriptions.Messages[k] = v
	}
}

func stringKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func mapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func intKeys[V any](m map[int]V) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
