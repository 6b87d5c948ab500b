package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSet(t *testing.T) {
	t.Run("add and query", func(t *testing.T) {
		s := NewErrorSet(nil)
		s.Add("Name", "required")
		s.Add("Name", "required")
		s.Add("Name", "too short")

		assert.True(t, s.HasErrors())
		assert.Equal(t, []string{"required", "too short"}, s.ErrorsFor("Name"))
		assert.Empty(t, s.ErrorsFor("Email"))
	})

	t.Run("errors for returns a copy", func(t *testing.T) {
		s := NewErrorSet(nil)
		s.Add("Name", "required")

		got := s.ErrorsFor("Name")
		got[0] = "mutated"

		assert.Equal(t, []string{"required"}, s.ErrorsFor("Name"))
	})

	t.Run("remove and clear", func(t *testing.T) {
		s := NewErrorSet(nil)
		s.Add("Name", "a")
		s.Add("Name", "b")
		s.Add("Email", "c")

		s.Remove("Name", "a")
		s.Remove("Name", "missing")
		assert.Equal(t, []string{"b"}, s.ErrorsFor("Name"))

		s.Remove("Name", "b")
		s.Clear("Email")
		s.Clear("Email")
		assert.False(t, s.HasErrors())
	})

	t.Run("raises HasErrors on owner only when flag flips", func(t *testing.T) {
		var owner Notifier
		var raised []string
		owner.OnPropertyChanged(func(name string) { raised = append(raised, name) })
		s := NewErrorSet(&owner)

		s.Add("Name", "a")
		s.Add("Email", "b")
		s.Clear("Name")
		s.Clear("Email")

		assert.Equal(t, []string{PropHasErrors, PropHasErrors}, raised)
	})

	t.Run("errors changed channel reports property", func(t *testing.T) {
		s := NewErrorSet(nil)
		var changed []string
		sub := s.OnErrorsChanged(func(name string) { changed = append(changed, name) })

		s.Add("Name", "a")
		s.Remove("Name", "a")
		sub.Unsubscribe()
		s.Add("Email", "b")

		assert.Equal(t, []string{"Name", "Name"}, changed)
	})
}

func TestErrorSetReplace(t *testing.T) {
	var owner Notifier
	var raised, changed []string
	owner.OnPropertyChanged(func(name string) { raised = append(raised, name) })
	s := NewErrorSet(&owner)
	s.OnErrorsChanged(func(name string) { changed = append(changed, name) })

	s.Replace("Name", "a")
	s.Replace("Name", "a")
	s.Replace("Name", "b", "c")
	assert.Equal(t, []string{"b", "c"}, s.ErrorsFor("Name"))

	s.Replace("Name")
	assert.False(t, s.HasErrors())

	assert.Equal(t, []string{"Name", "Name", "Name"}, changed)
	assert.Equal(t, []string{PropHasErrors, PropHasErrors}, raised)
}
