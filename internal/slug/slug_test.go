package slug

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeProber struct {
	taken map[string]string // slug -> owning post id
	err   error
	calls int
}

func (f *fakeProber) SlugExists(slug, excludeID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	owner, ok := f.taken[slug]
	if !ok {
		return false, nil
	}
	if excludeID != "" && owner == excludeID {
		return false, nil
	}
	return true, nil
}

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Trimmed  Title  ", "trimmed-title"},
		{"Go 1.24 Released!", "go-124-released"},
		{"snake_case_title", "snake-case-title"},
		{"Already-Hyphenated --- Title", "already-hyphenated-title"},
		{"MiXeD CaSe", "mixed-case"},
		{"---leading and trailing---", "leading-and-trailing"},
		{"C'est l'été", "cest-lt"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMake_OutputAlwaysValid(t *testing.T) {
	titles := []string{
		"Hello World",
		"Go 1.24 Released!",
		"  What's New in Cloud-Native Go?  ",
		"100% __ weird ** title ((9))",
		"a",
		"A B C D E",
	}

	for _, title := range titles {
		s := Make(title)
		if s == "" {
			continue
		}
		assert.True(t, IsValid(s), "Make(%q) = %q is not a valid slug", title, s)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("hello-world"))
	assert.True(t, IsValid("post"))
	assert.True(t, IsValid("go-124-released"))
	assert.False(t, IsValid("Hello-World"))
	assert.False(t, IsValid("hello--world"))
	assert.False(t, IsValid("-hello"))
	assert.False(t, IsValid("hello-"))
	assert.False(t, IsValid("hello world"))
	assert.False(t, IsValid(""))
}

func TestUnique_NoCollision(t *testing.T) {
	prober := &fakeProber{taken: map[string]string{}}

	got, err := Unique(prober, "Hello World", "")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world", got)
	assert.Equal(t, 1, prober.calls)
}

func TestUnique_AppendsCounter(t *testing.T) {
	prober := &fakeProber{taken: map[string]string{
		"hello-world": "other-1",
	}}

	got, err := Unique(prober, "Hello World", "")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world-1", got)
}

func TestUnique_SkipsTakenCounters(t *testing.T) {
	prober := &fakeProber{taken: map[string]string{
		"hello-world":   "other-1",
		"hello-world-1": "other-2",
	}}

	got, err := Unique(prober, "Hello World", "")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world-2", got)
}

func TestUnique_ExcludesOwnPost(t *testing.T) {
	// A post keeping its own slug across an edit is not a collision.
	prober := &fakeProber{taken: map[string]string{
		"hello-world": "post-1",
	}}

	got, err := Unique(prober, "Hello World", "post-1")
	assert.NoError(t, err)
	assert.Equal(t, "hello-world", got)
}

func TestUnique_EmptyBase(t *testing.T) {
	prober := &fakeProber{taken: map[string]string{}}

	_, err := Unique(prober, "!!!", "")
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 0, prober.calls)
}

func TestUnique_Exhausted(t *testing.T) {
	// Base and every suffixed candidate through -99 are taken.
	taken := map[string]string{"post": "x"}
	for i := 1; i <= 99; i++ {
		taken[fmt.Sprintf("post-%d", i)] = "x"
	}
	prober := &fakeProber{taken: taken}

	_, err := Unique(prober, "Post", "")
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestUnique_ProberError(t *testing.T) {
	dbErr := errors.New("connection refused")
	prober := &fakeProber{err: dbErr}

	_, err := Unique(prober, "Hello World", "")
	assert.ErrorIs(t, err, dbErr)
}
