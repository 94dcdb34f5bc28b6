package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorrc/ticket-analytics-backend/internal/core/domain"
)

func TestRoster_LevelFor(t *testing.T) {
	roster := domain.DefaultRoster()

	t.Run("rostered names resolve to their level", func(t *testing.T) {
		assert.Equal(t, domain.LevelOne, roster.LevelFor("Matheus Paleari"))
		assert.Equal(t, domain.LevelTwo, roster.LevelFor("Daniella Ponciano"))
		assert.Equal(t, domain.LevelThree, roster.LevelFor("Agatha Anunciação"))
	})

	t.Run("matching is exact and case sensitive", func(t *testing.T) {
		assert.Equal(t, domain.LevelTwo, roster.LevelFor("Laura almeida"))
		assert.Equal(t, domain.LevelOther, roster.LevelFor("Laura Almeida"))
		assert.Equal(t, domain.LevelOther, roster.LevelFor("laura almeida"))
		assert.Equal(t, domain.LevelOther, roster.LevelFor(" Matheus Paleari"))
	})

	t.Run("unmapped and empty names fall back to Other", func(t *testing.T) {
		assert.Equal(t, domain.LevelOther, roster.LevelFor("Nobody Inparticular"))
		assert.Equal(t, domain.LevelOther, roster.LevelFor(""))
	})

	t.Run("duplicate names resolve to the first listing level", func(t *testing.T) {
		r := domain.NewRoster([]string{"Alice"}, []string{"Alice", "Bob"}, nil)
		assert.Equal(t, domain.LevelOne, r.LevelFor("Alice"))
		assert.Equal(t, domain.LevelTwo, r.LevelFor("Bob"))
	})
}

func TestRoster_Headcount(t *testing.T) {
	roster := domain.DefaultRoster()

	assert.Equal(t, 8, roster.Headcount(domain.LevelOne))
	assert.Equal(t, 10, roster.Headcount(domain.LevelTwo))
	assert.Equal(t, 1, roster.Headcount(domain.LevelThree))
	assert.Equal(t, 0, roster.Headcount(domain.LevelOther))
}

func TestSupportLevel_IsValid(t *testing.T) {
	assert.True(t, domain.LevelOne.IsValid())
	assert.True(t, domain.LevelOther.IsValid())
	assert.False(t, domain.SupportLevel("Level 4").IsValid())
	assert.False(t, domain.SupportLevel("").IsValid())
}
