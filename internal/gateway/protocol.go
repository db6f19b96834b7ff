package gateway

import (
	"github.com/grebnov/neoncity/internal/model"
	"github.com/grebnov/neoncity/internal/nav"
)

// Client message types. The envelope's type field discriminates the union.
const (
	msgInit       = "init"
	msgFindPath   = "findPath"
	msgUpdateMap  = "updateMap"
	msgUpdateTile = "updateTile"
	msgLogin      = "login"
	msgWorld      = "world"
	msgViewport   = "viewport"
)

// Server message types.
const (
	msgInitialized = "initialized"
	msgPathResult  = "pathResult"
	msgMapUpdated  = "mapUpdated"
	msgTileUpdated = "tileUpdated"
	msgLoginResult = "loginResult"
	msgError       = "error"
)

// envelope is the minimal frame decoded first to dispatch on type.
type envelope struct {
	Type string `json:"type"`
}

type initMsg struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	WalkableMap []int `json:"walkableMap"`
}

type findPathMsg struct {
	ID     int  `json:"id"`
	StartX int  `json:"startX"`
	StartY int  `json:"startY"`
	EndX   int  `json:"endX"`
	EndY   int  `json:"endY"`
	Smooth bool `json:"smooth"`
}

type updateMapMsg struct {
	WalkableMap []int `json:"walkableMap"`
}

type updateTileMsg struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Walkable bool `json:"walkable"`
}

type loginMsg struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type viewportMsg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type initializedMsg struct {
	Type string `json:"type"`
}

type pathResultMsg struct {
	Type  string      `json:"type"`
	ID    int         `json:"id"`
	Path  []nav.Point `json:"path"`
	Start nav.Point   `json:"start"`
	End   nav.Point   `json:"end"`
}

type mapUpdatedMsg struct {
	Type string `json:"type"`
}

type tileUpdatedMsg struct {
	Type     string `json:"type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Walkable bool   `json:"walkable"`
}

type loginResultMsg struct {
	Type string `json:"type"`
	OK   bool   `json:"ok"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type worldMsg struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`
}

type viewportResultMsg struct {
	Type       string             `json:"type"`
	Tiles      []*model.Tile      `json:"tiles"`
	Structures []*model.Structure `json:"structures"`
}

// toBitmap widens a JSON 0/1 array into the bitmap the session expects.
func toBitmap(cells []int) []bool {
	out := make([]bool, len(cells))
	for i, c := range cells {
		out[i] = c != 0
	}
	return out
}

// encodeResponse maps a session response onto its wire message.
func encodeResponse(resp nav.Response) any {
	switch r := resp.(type) {
	case nav.Initialized:
		return initializedMsg{Type: msgInitialized}
	case nav.PathResult:
		return pathResultMsg{Type: msgPathResult, ID: r.ID, Path: r.Path, Start: r.Start, End: r.End}
	case nav.MapUpdated:
		return mapUpdatedMsg{Type: msgMapUpdated}
	case nav.TileUpdated:
		return tileUpdatedMsg{Type: msgTileUpdated, X: r.X, Y: r.Y, Walkable: r.Walkable}
	case nav.SessionError:
		return errorMsg{Type: msgError, Message: r.Message}
	default:
		return nil
	}
}
