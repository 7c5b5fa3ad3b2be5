package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gacha-tracker/internal/config"
	"gacha-tracker/internal/domain"
)

func TestNew_FallsBackToEnglish(t *testing.T) {
	table, err := New(&config.Config{Locale: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "en", table.Lang())
}

func TestLookup(t *testing.T) {
	table, err := New(&config.Config{Locale: "en"})
	require.NoError(t, err)

	// game section
	assert.Equal(t, "Character Event Wish", table.Lookup(domain.GameGenshin, "characterEventWish"))
	// common-section fallback
	assert.Equal(t, "Pull pace is high; consider slowing down", table.Lookup(domain.GameGenshin, "pace_high"))
	// unknown keys resolve to themselves
	assert.Equal(t, "no_such_key", table.Lookup(domain.GameGenshin, "no_such_key"))
}

func TestMessage_SubstitutesPity(t *testing.T) {
	table, err := New(&config.Config{Locale: "en"})
	require.NoError(t, err)

	msg := table.Message(domain.GameGenshin, "soft_pity_continue", 78)
	assert.Contains(t, msg, "78")

	// templates without a placeholder pass through untouched
	assert.Equal(t, "Pull pace looks normal; continue as planned",
		table.Message(domain.GameGenshin, "normal_pace", 78))
}

func TestNew_ChineseTable(t *testing.T) {
	table, err := New(&config.Config{Locale: "zh-cn"})
	require.NoError(t, err)

	assert.Equal(t, "zh-cn", table.Lang())
	assert.Equal(t, "角色活动祈愿", table.Lookup(domain.GameGenshin, "characterEventWish"))
}
