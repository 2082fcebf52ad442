// internal/geo/maplink.go
package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	atPattern     = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	coordPrefix   = regexp.MustCompile(`^(-?\d+\.\d+),\s*\+?(-?\d+\.\d+)`)
	searchPattern = regexp.MustCompile(`/search/(-?\d+\.\d+),\+?(-?\d+\.\d+)`)
)

// ParseMapLink extracts coordinates from a map URL. Supported forms:
//
//	https://www.google.com/maps/place/X/@9.6902,76.3422,17z
//	https://maps.google.com/?q=9.6902,76.3422
//	https://www.google.com/maps/search/9.6902,+76.3422
//	https://maps.google.com/?ll=9.6902,76.3422
func ParseMapLink(raw string) (Point, bool) {
	if m := atPattern.FindStringSubmatch(raw); m != nil {
		return pointFrom(m[1], m[2])
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Point{}, false
	}
	params := u.Query()

	if q := params.Get("q"); q != "" {
		if m := coordPrefix.FindStringSubmatch(q); m != nil {
			return pointFrom(m[1], m[2])
		}
	}

	if m := searchPattern.FindStringSubmatch(raw); m != nil {
		return pointFrom(m[1], m[2])
	}

	if ll := params.Get("ll"); ll != "" {
		if m := coordPrefix.FindStringSubmatch(ll); m != nil {
			return pointFrom(m[1], m[2])
		}
	}

	return Point{}, false
}

func pointFrom(lat, lng string) (Point, bool) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return Point{}, false
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return Point{}, false
	}
	p := Point{Lat: la, Lng: ln}
	if p.Validate() != nil {
		return Point{}, false
	}
	return p, true
}

const maxRedirects = 5

var shortLinkHosts = map[string]bool{
	"goo.gl":          true,
	"maps.app.goo.gl": true,
	"g.page":          true,
}

// shortLink reports whether raw is an https link on a known short-link host.
func shortLink(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	return shortLinkHosts[strings.ToLower(u.Hostname())]
}

// redirectAllowed keeps expansion on short-link and Google hosts over https.
func redirectAllowed(u *url.URL) bool {
	if u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return shortLinkHosts[host] || host == "google.com" || strings.HasSuffix(host, ".google.com")
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: too many redirects", ErrInvalidPoint)
	}
	if !redirectAllowed(req.URL) {
		return fmt.Errorf("%w: redirect to %s not allowed", ErrInvalidPoint, req.URL.Hostname())
	}
	return nil
}

// MapLinkResolver turns a map URL into coordinates, following redirects for
// short links first. Only https short links on goo.gl, maps.app.goo.gl and
// g.page are fetched.
type MapLinkResolver struct {
	client *http.Client
}

func NewMapLinkResolver(timeout time.Duration) *MapLinkResolver {
	return &MapLinkResolver{client: &http.Client{
		Timeout:       timeout,
		CheckRedirect: checkRedirect,
	}}
}

func (r *MapLinkResolver) Resolve(ctx context.Context, raw string) (Point, error) {
	target := raw
	if shortLink(raw) {
		expanded, err := r.expand(ctx, raw)
		if err != nil {
			return Point{}, err
		}
		target = expanded
	}

	p, ok := ParseMapLink(target)
	if !ok {
		return Point{}, fmt.Errorf("%w: no coordinates in map link", ErrInvalidPoint)
	}
	return p, nil
}

func (r *MapLinkResolver) expand(ctx context.Context, raw string) (string, error) {
	if !shortLink(raw) {
		return "", fmt.Errorf("%w: not a short map link", ErrInvalidPoint)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return "", fmt.Errorf("%w: bad map link: %v", ErrInvalidPoint, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to resolve short link: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}
