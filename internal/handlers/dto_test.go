package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-agent/internal/game"
)

func TestParseParams(t *testing.T) {
	query, err := url.ParseQuery("width=8&height=8&mine_count=10&x=3&y=4")
	assert.NoError(t, err)

	params, err := ParseParams(query)
	assert.NoError(t, err)
	assert.Equal(t, game.Params{Width: 8, Height: 8, MineCount: 10}, params)

	pos, err := ParsePosition(query)
	assert.NoError(t, err)
	assert.Equal(t, game.Cell{X: 3, Y: 4}, pos)
}

func TestParseParamsMissingField(t *testing.T) {
	query, err := url.ParseQuery("width=8&height=8")
	assert.NoError(t, err)

	_, err = ParseParams(query)
	assert.Error(t, err)
}

func TestParseParamsInvalid(t *testing.T) {
	query, err := url.ParseQuery("width=2&height=2&mine_count=10")
	assert.NoError(t, err)

	_, err = ParseParams(query)
	assert.ErrorIs(t, err, game.ErrBadMineCount)
}
