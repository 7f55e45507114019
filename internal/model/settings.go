package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind describes how a setting value is encoded.
type Kind int

const (
	KindString Kind = iota // Free single-token text (AI engine name)
	KindChoice             // One of a fixed set of values
	KindBool               // Literal "true" / "false"
	KindColor              // "R,G,B" with 0-255 channels
)

func (k Kind) String() string {
	switch k {
	case KindChoice:
		return "Choice"
	case KindBool:
		return "Bool"
	case KindColor:
		return "Color"
	default:
		return "String"
	}
}

// Setting keys understood by the game.
const (
	KeyMode              = "mode"
	KeyResolution        = "resolution"
	KeyShadows           = "shadows"
	KeyAntialiasing      = "antialiasing"
	KeyDifficulty        = "difficulty"
	KeyAI                = "ai"
	KeyShowSuggestedMove = "show_suggested_move"
	KeyUserPiecesColor   = "user_pieces_color"
	KeyUserSmokeColor    = "user_smoke_color"
	KeyAIPiecesColor     = "ai_pieces_color"
	KeyAISmokeColor      = "ai_smoke_color"
	KeyBackgroundColor   = "background_color"
	KeyBoardColor1       = "board_color_1"
	KeyBoardColor2       = "board_color_2"
	KeyAllowedMoveColor  = "allowed_move_color"
)

// Setting groups, used to lay out the launcher form.
const (
	GroupGraphics = "Graphical settings"
	GroupGame     = "Game"
	GroupColors   = "Game colors"
)

var (
	ErrUnknownKey   = errors.New("unknown setting")
	ErrInvalidValue = errors.New("invalid setting value")
)

// Spec describes one user-adjustable setting.
type Spec struct {
	Key     string
	Label   string
	Group   string
	Kind    Kind
	Choices []string // Only for KindChoice
	Default string
}

// specs is the ordered table of every known setting. The order is the
// presentation order of the launcher form.
var specs = []Spec{
	{Key: KeyMode, Label: "Mode", Group: GroupGraphics, Kind: KindChoice,
		Choices: []string{"fullscreen", "window"}, Default: "fullscreen"},
	{Key: KeyResolution, Label: "Resolution", Group: GroupGraphics, Kind: KindChoice,
		Choices: []string{"800x600", "1024x576", "1280x720", "1600x900", "1920x1080"}, Default: "1024x576"},
	{Key: KeyShadows, Label: "Shadows", Group: GroupGraphics, Kind: KindChoice,
		Choices: []string{"high", "low"}, Default: "low"},
	{Key: KeyAntialiasing, Label: "Antialiasing", Group: GroupGraphics, Kind: KindChoice,
		Choices: []string{"high", "low", "none"}, Default: "high"},

	{Key: KeyDifficulty, Label: "Difficulty", Group: GroupGame, Kind: KindChoice,
		Choices: []string{"impossible", "hard", "normal", "easy"}, Default: "easy"},
	{Key: KeyAI, Label: "AI engine", Group: GroupGame, Kind: KindString, Default: "stockfish"},
	{Key: KeyShowSuggestedMove, Label: "Show suggested move", Group: GroupGame, Kind: KindBool, Default: "true"},

	{Key: KeyUserPiecesColor, Label: "User pieces", Group: GroupColors, Kind: KindColor, Default: "255,237,179"},
	{Key: KeyUserSmokeColor, Label: "User smoke", Group: GroupColors, Kind: KindColor, Default: "105,94,59"},
	{Key: KeyAIPiecesColor, Label: "AI pieces", Group: GroupColors, Kind: KindColor, Default: "130,20,20"},
	{Key: KeyAISmokeColor, Label: "AI smoke", Group: GroupColors, Kind: KindColor, Default: "77,31,102"},
	{Key: KeyBackgroundColor, Label: "Background", Group: GroupColors, Kind: KindColor, Default: "255,255,255"},
	{Key: KeyBoardColor1, Label: "Board (dark squares)", Group: GroupColors, Kind: KindColor, Default: "179,153,105"},
	{Key: KeyBoardColor2, Label: "Board (light squares)", Group: GroupColors, Kind: KindColor, Default: "255,255,255"},
	{Key: KeyAllowedMoveColor, Label: "Allowed moves", Group: GroupColors, Kind: KindColor, Default: "240,207,87"},
}

var specIndex = func() map[string]int {
	idx := make(map[string]int, len(specs))
	for i, s := range specs {
		idx[s.Key] = i
	}
	return idx
}()

// Specs returns the known settings in presentation order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// SpecsInGroup returns the known settings belonging to group, in order.
func SpecsInGroup(group string) []Spec {
	var out []Spec
	for _, s := range specs {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the descriptor for key.
func Lookup(key string) (Spec, bool) {
	i, ok := specIndex[key]
	if !ok {
		return Spec{}, false
	}
	return specs[i], true
}

// IsInternal reports whether key is transient UI state that must never be
// written to the config file. A leading or trailing underscore marks it.
func IsInternal(key string) bool {
	return strings.HasPrefix(key, "_") || strings.HasSuffix(key, "_")
}

// IsToken reports whether s can be stored as a single value token.
func IsToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\r\n\v\f")
}

// Validate checks value against the rules for key. Unknown keys only need
// a well-formed token so that they round-trip through the config file.
func Validate(key, value string) error {
	if !IsToken(key) {
		return fmt.Errorf("%w: key %q", ErrInvalidValue, key)
	}
	if !IsToken(value) {
		return fmt.Errorf("%w: %s=%q must be a single non-empty token", ErrInvalidValue, key, value)
	}
	spec, ok := Lookup(key)
	if !ok {
		return nil
	}
	switch spec.Kind {
	case KindChoice:
		for _, c := range spec.Choices {
			if c == value {
				return nil
			}
		}
		return fmt.Errorf("%w: %s=%q (expected one of %s)",
			ErrInvalidValue, key, value, strings.Join(spec.Choices, ", "))
	case KindBool:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %s=%q (expected true or false)", ErrInvalidValue, key, value)
		}
	case KindColor:
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
