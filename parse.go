package geodesy

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golang/geo/s2"
)

// coordNumber matches a signed decimal number at the start of the input.
var coordNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)

// coordFiller marks the end of a degree, minute or second component.
const coordFiller = "°'\"′″:"

type angleGroup struct {
	nums   []string
	hemi   byte
	closed bool
}

func (g *angleGroup) empty() bool { return len(g.nums) == 0 && g.hemi == 0 }

// ParseAngle parses a single angle written as decimal degrees ("-73.25"),
// degrees and minutes ("73 15.0W") or degrees, minutes and seconds
// (`73°15'00"W`). A leading minus sign or a S/W hemisphere letter makes the
// result negative.
func ParseAngle(s string) (float64, error) {
	groups, err := tokenize(s)
	if err != nil {
		return 0, err
	}
	if len(groups) != 1 {
		return 0, fmt.Errorf("%w: %q is not a single angle", ErrMalformedCoordinate, s)
	}
	return groups[0].decimal(s)
}

// ParseCoordinate parses a latitude/longitude pair from free text such as
// "44.5, -73.2", "44 30.5N 73 12.0W" or `44°30'15"N 73°12'00"W`. Halves
// are taken as latitude then longitude unless hemisphere letters say
// otherwise. Without letters or a separator, the numbers are split evenly
// between the two halves.
func ParseCoordinate(s string) (s2.LatLng, error) {
	groups, err := tokenize(s)
	if err != nil {
		return s2.LatLng{}, err
	}
	if len(groups) == 1 && groups[0].hemi == 0 && !groups[0].closed {
		nums := groups[0].nums
		if len(nums) == 2 || len(nums) == 4 || len(nums) == 6 {
			half := len(nums) / 2
			groups = []angleGroup{{nums: nums[:half]}, {nums: nums[half:]}}
		}
	}
	if len(groups) != 2 {
		return s2.LatLng{}, fmt.Errorf("%w: %q does not have a latitude and a longitude", ErrMalformedCoordinate, s)
	}

	if isLongitudeHemi(groups[0].hemi) || isLatitudeHemi(groups[1].hemi) {
		groups[0], groups[1] = groups[1], groups[0]
	}
	if isLongitudeHemi(groups[0].hemi) || isLatitudeHemi(groups[1].hemi) {
		return s2.LatLng{}, fmt.Errorf("%w: %q has conflicting hemispheres", ErrMalformedCoordinate, s)
	}

	latitude, err := groups[0].decimal(s)
	if err != nil {
		return s2.LatLng{}, err
	}
	longitude, err := groups[1].decimal(s)
	if err != nil {
		return s2.LatLng{}, err
	}
	if math.Abs(latitude) > 90 || math.Abs(longitude) > 180 {
		return s2.LatLng{}, fmt.Errorf("%w: (%v, %v)", ErrCoordinateOutOfRange, latitude, longitude)
	}
	return s2.LatLngFromDegrees(latitude, longitude), nil
}

func isLatitudeHemi(h byte) bool  { return h == 'N' || h == 'S' }
func isLongitudeHemi(h byte) bool { return h == 'E' || h == 'W' }

func tokenize(s string) ([]angleGroup, error) {
	var groups []angleGroup
	cur := angleGroup{}
	flush := func() {
		if !cur.empty() {
			groups = append(groups, cur)
		}
		cur = angleGroup{}
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r) || strings.ContainsRune(coordFiller, r):
			i += size
		case r == ',' || r == ';':
			if len(cur.nums) > 0 {
				cur.closed = true
				flush()
			}
			i += size
		case strings.ContainsRune("NSEWnsew", r):
			if !standaloneLetter(s, i) {
				return nil, fmt.Errorf("%w: %q: unexpected %q", ErrMalformedCoordinate, s, r)
			}
			i += size
			h := byte(unicode.ToUpper(r))
			switch {
			case len(cur.nums) > 0 && cur.hemi != 0:
				// leading letter of the next group
				cur.closed = true
				flush()
				cur.hemi = h
			case len(cur.nums) > 0:
				// trailing letter ends the group
				cur.hemi = h
				cur.closed = true
				flush()
			case cur.hemi != 0:
				return nil, fmt.Errorf("%w: %q", ErrMalformedCoordinate, s)
			default:
				cur.hemi = h
			}
		default:
			loc := coordNumber.FindStringIndex(s[i:])
			if loc == nil {
				return nil, fmt.Errorf("%w: %q: unexpected %q", ErrMalformedCoordinate, s, r)
			}
			tok := s[i : i+loc[1]]
			// a sign glued to a preceding digit is a separator, as in 44-30-15
			if (tok[0] == '-' || tok[0] == '+') && i > 0 && isDigit(s[i-1]) {
				tok = tok[1:]
			}
			cur.nums = append(cur.nums, tok)
			i += loc[1]
		}
	}
	flush()

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: %q has no numbers", ErrMalformedCoordinate, s)
	}
	return groups, nil
}

// standaloneLetter reports whether the hemisphere letter at s[i] is not part
// of a word and does not sit between two numbers, as the e in 1.5e-3 does.
func standaloneLetter(s string, i int) bool {
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	next, _ := utf8.DecodeRuneInString(s[i+1:])
	if unicode.IsLetter(prev) || unicode.IsLetter(next) {
		return false
	}
	afterNumber := prev == '.' || (prev < utf8.RuneSelf && isDigit(byte(prev)))
	beforeNumber := next == '-' || next == '+' || next == '.' || (next < utf8.RuneSelf && isDigit(byte(next)))
	return !(afterNumber && beforeNumber)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (g *angleGroup) decimal(raw string) (float64, error) {
	if len(g.nums) == 0 || len(g.nums) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCoordinate, raw)
	}

	sign := 1
	if g.hemi == 'S' || g.hemi == 'W' {
		sign = -1
	}
	var parts [3]float64
	for i, num := range g.nums {
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedCoordinate, raw, err)
		}
		if i == 0 && strings.HasPrefix(num, "-") {
			sign = -sign
		} else if i > 0 && (v >= 60 || strings.ContainsAny(num, "+-")) {
			return 0, fmt.Errorf("%w: %q: component %s out of range", ErrMalformedCoordinate, raw, num)
		}
		if i < len(g.nums)-1 && strings.Contains(num, ".") {
			return 0, fmt.Errorf("%w: %q: only the last component may be fractional", ErrMalformedCoordinate, raw)
		}
		parts[i] = v
	}
	return FromDMS(parts[0], parts[1], parts[2], sign), nil
}
