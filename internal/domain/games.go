package domain

// Game identifies one of the supported gacha games.
type Game string

const (
	GameGenshin  Game = "genshinImpact"
	GameStarRail Game = "starRail"
	GameZenless  Game = "zenlessZone"
)

// GameInfo carries the immutable per-game identifiers. Localized display
// names live in the locale package, keyed by (game, "name").
type GameInfo struct {
	Game      Game
	RawValue  int
	UIDPrefix string
	BizID     string
}

var games = []GameInfo{
	{Game: GameGenshin, RawValue: 0, UIDPrefix: "1", BizID: "hk4e_global"},
	{Game: GameStarRail, RawValue: 1, UIDPrefix: "2", BizID: "hkrpg_global"},
	{Game: GameZenless, RawValue: 2, UIDPrefix: "3", BizID: "nap_global"},
}

// AllGames returns the supported games in raw-value order.
func AllGames() []GameInfo {
	out := make([]GameInfo, len(games))
	copy(out, games)
	return out
}

// GameByValue resolves a game from its string value.
func GameByValue(value string) (GameInfo, bool) {
	for _, g := range games {
		if string(g.Game) == value {
			return g, true
		}
	}
	return GameInfo{}, false
}

// GameByUID guesses the game from the UID's leading digit.
func GameByUID(uid string) (GameInfo, bool) {
	if uid == "" {
		return GameInfo{}, false
	}
	prefix := uid[:1]
	for _, g := range games {
		if g.UIDPrefix == prefix {
			return g, true
		}
	}
	return GameInfo{}, false
}

func (g Game) Valid() bool {
	_, ok := GameByValue(string(g))
	return ok
}
