// Package cli runs isridgeo conversion commands, either one from the command
// line or a batch read line by line.
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/jonboulle/clockwork"
	"github.com/sarbayes/geodesy"
	"github.com/sarbayes/geodesy/internal/config"
	"github.com/twpayne/go-kml"
)

// ErrUsage reports a wrong command name or argument count.
var ErrUsage = errors.New("usage")

type command struct {
	usage   string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(r *Runner, args []string) (result, error)
}

// result is a command's output: text for the text format, value for json
// and placemark for kml. placemark is nil for commands without geometry.
type result struct {
	text      string
	value     any
	placemark kml.Element
}

var commands = map[string]command{
	"to-utm":   {"to-utm LAT LON", 2, 2, (*Runner).toUTM},
	"from-utm": {"from-utm EASTING NORTHING ZONE HEMI", 4, 4, (*Runner).fromUTM},
	"to-dms":   {"to-dms DEGREES", 1, 1, (*Runner).toDMS},
	"from-dms": {"from-dms D M S [SIGN]", 3, 4, (*Runner).fromDMS},
	"distance": {"distance LAT1 LON1 LAT2 LON2", 4, 4, (*Runner).distance},
	"bbox":     {"bbox LAT LON HALFSIDE_KM", 3, 3, (*Runner).bbox},
	"parse":    {"parse TEXT...", 1, -1, (*Runner).parse},
}

// Usage lists the supported commands, one per line.
func Usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString("  ")
		b.WriteString(commands[name].usage)
		b.WriteByte('\n')
	}
	return b.String()
}

// Runner executes commands and writes their results to out. With kml output
// the placemarks are collected and written as one document by Flush.
type Runner struct {
	cfg        *config.Config
	out        io.Writer
	logger     *slog.Logger
	clock      clockwork.Clock
	placemarks []kml.Element
}

// New returns a Runner writing results to out and diagnostics to logger.
func New(cfg *config.Config, out io.Writer, logger *slog.Logger) *Runner {
	return &Runner{cfg: cfg, out: out, logger: logger, clock: clockwork.NewRealClock()}
}

// SetClock replaces the clock used to time batches. nil restores the real clock.
func (r *Runner) SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	r.clock = c
}

// Run executes a single command and flushes its output. args[0] is the
// command name.
func (r *Runner) Run(args []string) error {
	if err := r.execute(args); err != nil {
		return err
	}
	return r.Flush()
}

func (r *Runner) execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given", ErrUsage)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	rest := args[1:]
	if len(rest) < cmd.minArgs || (cmd.maxArgs >= 0 && len(rest) > cmd.maxArgs) {
		return fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}

	res, err := cmd.run(r, rest)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if r.format() == "kml" && res.placemark == nil {
		return fmt.Errorf("%w: %s has no kml output", ErrUsage, args[0])
	}
	r.logger.Debug("converted", "command", args[0], "args", rest)
	return r.write(res)
}

// RunBatch executes one command per line of in. Blank lines and lines
// starting with '#' are skipped. A failing line is logged and counted;
// processing continues with the next line. The returned error is non-nil
// only if reading in fails or output cannot be written.
func (r *Runner) RunBatch(in io.Reader) (processed, failed int, err error) {
	start := r.clock.Now()
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		processed++
		if err := r.execute(strings.Fields(line)); err != nil {
			if isWriteError(err) {
				return processed, failed, err
			}
			failed++
			r.logger.Warn("line failed", "line", lineNo, "input", line, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return processed, failed, fmt.Errorf("read input: %w", err)
	}
	if err := r.Flush(); err != nil {
		return processed, failed, err
	}
	r.logger.Info("batch complete", "processed", processed, "failed", failed,
		"elapsed", r.clock.Since(start))
	return processed, failed, nil
}

type writeError struct{ err error }

func (e *writeError) Error() string { return "write output: " + e.err.Error() }
func (e *writeError) Unwrap() error { return e.err }

func isWriteError(err error) bool {
	var we *writeError
	return errors.As(err, &we)
}

func (r *Runner) format() string { return strings.ToLower(r.cfg.Output.Format) }

func (r *Runner) write(res result) error {
	var err error
	switch r.format() {
	case "kml":
		r.placemarks = append(r.placemarks, res.placemark)
	case "json":
		err = json.NewEncoder(r.out).Encode(res.value)
	default:
		_, err = fmt.Fprintln(r.out, res.text)
	}
	if err != nil {
		return &writeError{err}
	}
	return nil
}

// Flush writes the collected kml placemarks as a single document. It does
// nothing for the other output formats or when no placemarks are pending.
func (r *Runner) Flush() error {
	if len(r.placemarks) == 0 {
		return nil
	}
	doc := kml.KML(kml.Document(
		append([]kml.Element{kml.Name("isridgeo")}, r.placemarks...)...,
	))
	r.placemarks = nil
	if err := doc.WriteIndent(r.out, "", "  "); err != nil {
		return &writeError{err}
	}
	return nil
}

func pointPlacemark(name string, lat, lng float64) kml.Element {
	return kml.Placemark(
		kml.Name(name),
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: lng, Lat: lat})),
	)
}

type pointOutput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *Runner) pointResult(name string, p s2.LatLng) result {
	lat, lng := p.Lat.Degrees(), p.Lng.Degrees()
	var text string
	if r.cfg.Output.DMS {
		text = geodesy.FormatLatitude(lat) + " " + geodesy.FormatLongitude(lng)
	} else {
		prec := r.cfg.Output.Precision
		text = fmt.Sprintf("%.*f %.*f", prec, lat, prec, lng)
	}
	return result{
		text:      text,
		value:     pointOutput{Latitude: lat, Longitude: lng},
		placemark: pointPlacemark(name, lat, lng),
	}
}

func (r *Runner) toUTM(args []string) (result, error) {
	lat, lng, err := parseLatLng(args[0], args[1])
	if err != nil {
		return result{}, err
	}
	uc, err := geodesy.ToUTM(lat, lng)
	if err != nil {
		return result{}, err
	}
	return result{
		text: fmt.Sprintf("%d%s %.2f %.2f", uc.Zone, uc.Hemisphere, uc.Easting, uc.Northing),
		value: struct {
			Zone       int     `json:"zone"`
			Hemisphere string  `json:"hemisphere"`
			Easting    float64 `json:"easting"`
			Northing   float64 `json:"northing"`
		}{uc.Zone, uc.Hemisphere.String(), uc.Easting, uc.Northing},
		placemark: pointPlacemark(uc.String(), lat, lng),
	}, nil
}

func (r *Runner) fromUTM(args []string) (result, error) {
	easting, err := parseFloat("easting", args[0])
	if err != nil {
		return result{}, err
	}
	northing, err := parseFloat("northing", args[1])
	if err != nil {
		return result{}, err
	}
	zone, err := strconv.Atoi(args[2])
	if err != nil {
		return result{}, fmt.Errorf("%w: zone %q", geodesy.ErrInvalidZone, args[2])
	}
	hemisphere, err := parseHemisphere(args[3])
	if err != nil {
		return result{}, err
	}
	p, err := geodesy.FromUTM(easting, northing, zone, hemisphere)
	if err != nil {
		return result{}, err
	}
	return r.pointResult(fmt.Sprintf("%d%s %s %s", zone, hemisphere, args[0], args[1]), p), nil
}

func (r *Runner) toDMS(args []string) (result, error) {
	x, err := geodesy.ParseAngle(args[0])
	if err != nil {
		return result{}, err
	}
	d := geodesy.ToDMS(x)
	return result{
		text: d.String(),
		value: struct {
			Degrees float64 `json:"degrees"`
			Minutes float64 `json:"minutes"`
			Seconds float64 `json:"seconds"`
			Sign    int     `json:"sign"`
		}{d.Degrees, d.Minutes, d.Seconds, d.Sign},
	}, nil
}

func (r *Runner) fromDMS(args []string) (result, error) {
	var parts [3]float64
	for i, name := range []string{"degrees", "minutes", "seconds"} {
		v, err := parseFloat(name, args[i])
		if err != nil {
			return result{}, err
		}
		parts[i] = v
	}
	sign := 1
	if len(args) == 4 {
		s, err := strconv.Atoi(args[3])
		if err != nil {
			return result{}, fmt.Errorf("%w: sign %q", geodesy.ErrMalformedCoordinate, args[3])
		}
		sign = s
	}
	x := geodesy.FromDMS(parts[0], parts[1], parts[2], sign)
	return result{
		text: strconv.FormatFloat(x, 'f', r.cfg.Output.Precision, 64),
		value: struct {
			Degrees float64 `json:"degrees"`
		}{x},
	}, nil
}

func (r *Runner) distance(args []string) (result, error) {
	lat1, lng1, err := parseLatLng(args[0], args[1])
	if err != nil {
		return result{}, err
	}
	lat2, lng2, err := parseLatLng(args[2], args[3])
	if err != nil {
		return result{}, err
	}
	p := s2.LatLngFromDegrees(lat1, lng1)
	q := s2.LatLngFromDegrees(lat2, lng2)
	deg := geodesy.CentralAngle(p, q).Degrees()
	km := geodesy.GreatCircleDistance(p, q, geodesy.EarthRadiusKm)
	return result{
		text: fmt.Sprintf("%.*f %.3f", r.cfg.Output.Precision, deg, km),
		value: struct {
			Degrees    float64 `json:"degrees"`
			Kilometers float64 `json:"kilometers"`
		}{deg, km},
		placemark: kml.Placemark(
			kml.Name(fmt.Sprintf("%.3f km", km)),
			kml.LineString(kml.Coordinates(
				kml.Coordinate{Lon: lng1, Lat: lat1},
				kml.Coordinate{Lon: lng2, Lat: lat2},
			)),
		),
	}, nil
}

func (r *Runner) bbox(args []string) (result, error) {
	lat, lng, err := parseLatLng(args[0], args[1])
	if err != nil {
		return result{}, err
	}
	halfSide, err := parseFloat("half side", args[2])
	if err != nil {
		return result{}, err
	}
	if halfSide < 0 {
		return result{}, fmt.Errorf("%w: negative half side %v", geodesy.ErrCoordinateOutOfRange, halfSide)
	}
	rect := geodesy.BoundingBox(s2.LatLngFromDegrees(lat, lng), halfSide, geodesy.EarthRadiusKm)
	south, north := s1.Angle(rect.Lat.Lo).Degrees(), s1.Angle(rect.Lat.Hi).Degrees()
	west, east := s1.Angle(rect.Lng.Lo).Degrees(), s1.Angle(rect.Lng.Hi).Degrees()
	// an inverted interval crosses the antimeridian; keep the ring continuous
	ringEast := east
	if rect.Lng.IsInverted() {
		ringEast += 360
	}
	prec := r.cfg.Output.Precision
	return result{
		text: fmt.Sprintf("%.*f %.*f %.*f %.*f", prec, south, prec, west, prec, north, prec, east),
		value: struct {
			South float64 `json:"south"`
			West  float64 `json:"west"`
			North float64 `json:"north"`
			East  float64 `json:"east"`
		}{south, west, north, east},
		placemark: kml.Placemark(
			kml.Name(fmt.Sprintf("%s km box", args[2])),
			kml.Polygon(kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(
				kml.Coordinate{Lon: west, Lat: south},
				kml.Coordinate{Lon: ringEast, Lat: south},
				kml.Coordinate{Lon: ringEast, Lat: north},
				kml.Coordinate{Lon: west, Lat: north},
				kml.Coordinate{Lon: west, Lat: south},
			)))),
		),
	}, nil
}

func (r *Runner) parse(args []string) (result, error) {
	text := strings.Join(args, " ")
	p, err := geodesy.ParseCoordinate(text)
	if err != nil {
		return result{}, err
	}
	return r.pointResult(text, p), nil
}

func parseLatLng(latText, lngText string) (float64, float64, error) {
	lat, err := geodesy.ParseAngle(latText)
	if err != nil {
		return 0, 0, fmt.Errorf("latitude: %w", err)
	}
	lng, err := geodesy.ParseAngle(lngText)
	if err != nil {
		return 0, 0, fmt.Errorf("longitude: %w", err)
	}
	return lat, lng, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", geodesy.ErrMalformedCoordinate, name, s)
	}
	return v, nil
}

// parseHemisphere accepts N, S, north, south or a signed integer.
func parseHemisphere(s string) (geodesy.Hemisphere, error) {
	switch strings.ToLower(s) {
	case "n", "north":
		return geodesy.HemisphereNorth, nil
	case "s", "south":
		return geodesy.HemisphereSouth, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: hemisphere %q", geodesy.ErrMalformedCoordinate, s)
	}
	return geodesy.Hemisphere(v), nil
}
