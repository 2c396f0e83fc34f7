package a11y

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_FindAndString(t *testing.T) {
	root := NewNode("tabs", RoleTabList).Set(AttrOrientation, "horizontal").Append(
		NewNode("t-a", RoleTab).Set(AttrSelected, Bool(true)).Set(AttrTabIndex, TabIndex(0)),
		NewNode("t-b", RoleTab).Set(AttrSelected, Bool(false)).Set(AttrTabIndex, TabIndex(-1)),
	)

	tabs := root.FindRole(RoleTab)
	require.Len(t, tabs, 2)
	assert.Equal(t, "-1", root.FindID("t-b").Attr(AttrTabIndex))
	assert.Nil(t, root.FindID("missing"))
	assert.Equal(t, "", (*Node)(nil).Attr(AttrLabel))

	want := "tablist#tabs aria-orientation=\"horizontal\"\n" +
		"  tab#t-a aria-selected=\"true\" tabindex=\"0\"\n" +
		"  tab#t-b aria-selected=\"false\" tabindex=\"-1\"\n"
	if diff := cmp.Diff(want, root.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestLiveRegion_RetainsRecent(t *testing.T) {
	r := NewLiveRegion(2)
	_, ok := r.Last()
	assert.False(t, ok)

	r.Announce("one", PolitenessPolite)
	r.Announce("hidden", PolitenessOff)
	r.Announce("two", PolitenessAssertive)
	r.Announce("three", PolitenessPolite)

	want := []Announcement{
		{Message: "two", Politeness: PolitenessAssertive},
		{Message: "three", Politeness: PolitenessPolite},
	}
	if diff := cmp.Diff(want, r.History()); diff != "" {
		t.Errorf("History() mismatch (-want +got):\n%s", diff)
	}
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "three", last.Message)
}

func TestParsePoliteness(t *testing.T) {
	tests := []struct {
		in   string
		want Politeness
		err  bool
	}{
		{"", PolitenessPolite, false},
		{"polite", PolitenessPolite, false},
		{"assertive", PolitenessAssertive, false},
		{"off", PolitenessOff, false},
		{"loud", PolitenessPolite, true},
	}
	for _, tt := range tests {
		got, err := ParsePoliteness(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		if tt.in != "" {
			assert.Equal(t, tt.in, got.String())
		}
	}
}
