package store

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-cvgen/pkg/model"
)

// EntryList implements the add/update/remove contract shared by every
// list-valued section. Operations never write to the slice they receive: the
// result is either the input itself (no-op) or a freshly allocated slice.
type EntryList[T model.Entry[T]] struct {
	ids model.IDGenerator
}

// NewEntryList returns list operations backed by ids. A nil generator falls
// back to model.DefaultIDs.
func NewEntryList[T model.Entry[T]](ids model.IDGenerator) EntryList[T] {
	if ids == nil {
		ids = model.DefaultIDs
	}
	return EntryList[T]{ids: ids}
}

// Add appends defaults under a freshly generated identifier.
func (l EntryList[T]) Add(list []T, defaults T) []T {
	id := l.ids.NewID()
	if slices.ContainsFunc(list, func(item T) bool { return item.EntryID() == id }) {
		panic(fmt.Sprintf("store: generated id %q collides with an existing entry", id))
	}
	return append(slices.Clip(list), defaults.WithID(id))
}

// Update replaces a single field of the entry at index. An index outside the
// list returns the input unchanged.
func (l EntryList[T]) Update(list []T, index int, field string, value any) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	return replaceAt(list, index, list[index].WithField(field, value))
}

// Remove drops every entry whose identifier is id. An unknown id returns the
// input unchanged.
func (l EntryList[T]) Remove(list []T, id string) []T {
	if !slices.ContainsFunc(list, func(item T) bool { return item.EntryID() == id }) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	for _, item := range list {
		if item.EntryID() != id {
			out = append(out, item)
		}
	}
	return out
}

// Map applies fn to the entry at index, copy-on-write.
func (l EntryList[T]) Map(list []T, index int, fn func(T) T) []T {
	if index < 0 || index >= len(list) {
		return list
	}
	return replaceAt(list, index, fn(list[index]))
}

func replaceAt[T any](list []T, index int, item T) []T {
	out := slices.Clone(list)
	out[index] = item
	return out
}
