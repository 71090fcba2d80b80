// model/game.go
package model

type Genre string

const (
	GenreAction       Genre = "ACTION"
	GenreAdventure    Genre = "ADVENTURE"
	GenreBattleRoyale Genre = "BATTLE_ROYALE"
	GenreFighting     Genre = "FIGHTING"
	GenreFPS          Genre = "FPS"
	GenreHackNSlash   Genre = "HACK_N_SLASH"
	GenreHorror       Genre = "HORROR"
	GenreMetroidvania Genre = "METROIDVANIA"
	GenreMOBA         Genre = "MOBA"
	GenreMMORPG       Genre = "MMORPG"
	GenrePlatformer   Genre = "PLATFORMER"
	GenrePuzzle       Genre = "PUZZLE"
	GenreRacing       Genre = "RACING"
	GenreRoguelike    Genre = "ROGUELIKE"
	GenreRPG          Genre = "RPG"
	GenreRTS          Genre = "RTS"
	GenreSimulation   Genre = "SIMULATION"
	GenreSoulslike    Genre = "SOULSLIKE"
	GenreSports       Genre = "SPORTS"
	GenreSurvival     Genre = "SURVIVAL"
)

var genres = []Genre{
	GenreAction, GenreAdventure, GenreBattleRoyale, GenreFighting, GenreFPS,
	GenreHackNSlash, GenreHorror, GenreMetroidvania, GenreMOBA, GenreMMORPG,
	GenrePlatformer, GenrePuzzle, GenreRacing, GenreRoguelike, GenreRPG,
	GenreRTS, GenreSimulation, GenreSoulslike, GenreSports, GenreSurvival,
}

func ParseGenre(s string) (Genre, bool) {
	for _, g := range genres {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

func Genres() []Genre { return genres }

type Platform string

const (
	PlatformPlaystation Platform = "PLAYSTATION"
	PlatformXbox        Platform = "XBOX"
	PlatformNintendo    Platform = "NINTENDO"
	PlatformArcade      Platform = "ARCADE"
	PlatformMobile      Platform = "MOBILE"
	PlatformPC          Platform = "PC"
	PlatformVR          Platform = "VR"
	PlatformOther       Platform = "OTHER"
)

var platforms = []Platform{
	PlatformPlaystation, PlatformXbox, PlatformNintendo, PlatformArcade,
	PlatformMobile, PlatformPC, PlatformVR, PlatformOther,
}

func ParsePlatform(s string) (Platform, bool) {
	for _, p := range platforms {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

func Platforms() []Platform { return platforms }

// Game is a title in the rental catalog. Available is derived from
// Quantity (quantity > 0) in every query; it is never stored.
type Game struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Genre     Genre      `json:"genre"`
	Platforms []Platform `json:"platforms"`
	Quantity  int        `json:"quantity"`
	Available bool       `json:"available"`
}
