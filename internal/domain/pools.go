package domain

// PoolType describes one pool (banner) of a game. Only immutable numeric
// and identifier fields live here; the display name is resolved through the
// locale package with NameKey.
type PoolType struct {
	Game       Game
	Code       string
	NameKey    string
	Color      string
	Limited    bool
	Analyzable bool
}

var poolTypes = []PoolType{
	// Genshin Impact
	{Game: GameGenshin, Code: "100", NameKey: "beginnersWish", Color: "#99CCFF", Analyzable: true},
	{Game: GameGenshin, Code: "200", NameKey: "standardWish", Color: "#B0B0B0", Analyzable: true},
	{Game: GameGenshin, Code: "301", NameKey: "characterEventWish", Color: "#FF7A7A", Limited: true, Analyzable: true},
	{Game: GameGenshin, Code: "302", NameKey: "weaponEventWish", Color: "#FFB466", Limited: true, Analyzable: true},
	{Game: GameGenshin, Code: "400", NameKey: "charActivity2", Color: "#FF7A7A", Limited: true, Analyzable: true},

	// Star Rail
	{Game: GameStarRail, Code: "1", NameKey: "standardWarp", Color: "#B0B0B0", Analyzable: true},
	{Game: GameStarRail, Code: "2", NameKey: "characterEventWarp", Color: "#FF7A7A", Limited: true, Analyzable: true},
	{Game: GameStarRail, Code: "3", NameKey: "lightConeEventWarp", Color: "#FFB466", Limited: true, Analyzable: true},
	{Game: GameStarRail, Code: "11", NameKey: "beginnersWarp", Color: "#99CCFF", Analyzable: true},

	// Zenless Zone
	{Game: GameZenless, Code: "1", NameKey: "standardDraw", Color: "#B0B0B0", Analyzable: true},
	{Game: GameZenless, Code: "2", NameKey: "limitedCharacterDraw", Color: "#FF7A7A", Limited: true, Analyzable: true},
	{Game: GameZenless, Code: "3", NameKey: "limitedWeaponDraw", Color: "#FFB466", Limited: true, Analyzable: true},
}

// PoolTypesFor returns the pool descriptors of a game, in registry order.
func PoolTypesFor(game Game) []PoolType {
	var out []PoolType
	for _, p := range poolTypes {
		if p.Game == game {
			out = append(out, p)
		}
	}
	return out
}

// PoolTypeFor resolves one pool descriptor by game and code.
func PoolTypeFor(game Game, code string) (PoolType, bool) {
	for _, p := range poolTypes {
		if p.Game == game && p.Code == code {
			return p, true
		}
	}
	return PoolType{}, false
}
