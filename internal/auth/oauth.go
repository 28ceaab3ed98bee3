package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"moneytrail/configs"
	"moneytrail/internal/domain"
)

// Provider names
const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

const (
	googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	githubAPIURL      = "https://api.github.com"
)

// ErrNoEmail is returned when the provider does not disclose a verified email
var ErrNoEmail = errors.New("identity provider returned no email")

// Provider is one configured social login
type Provider struct {
	Name       string
	config     *oauth2.Config
	profileURL string
	fetch      func(ctx context.Context, client *http.Client, profileURL string) (domain.Identity, error)
}

// AuthCodeURL returns the provider consent page for state
func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for the user's identity
func (p *Provider) Exchange(ctx context.Context, code string) (domain.Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to exchange %s code: %w", p.Name, err)
	}

	identity, err := p.fetch(ctx, p.config.Client(ctx, token), p.profileURL)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to fetch %s profile: %w", p.Name, err)
	}
	identity.Provider = p.Name
	return identity, nil
}

// Providers holds the social logins that have credentials configured
type Providers struct {
	byName map[string]*Provider
}

// NewProviders builds the providers enabled in cfg. Callback URLs are
// {baseURL}/api/auth/{provider}/callback.
func NewProviders(cfg configs.AuthConfig, baseURL string) *Providers {
	p := &Providers{byName: make(map[string]*Provider)}
	base := strings.TrimRight(baseURL, "/")

	if cfg.Google.Enabled() {
		p.byName[ProviderGoogle] = &Provider{
			Name: ProviderGoogle,
			config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				Endpoint:     endpoint(endpoints.Google, cfg.Google),
				RedirectURL:  base + "/api/auth/google/callback",
				Scopes:       []string{"openid", "email", "profile"},
			},
			profileURL: orDefault(cfg.Google.APIURL, googleUserInfoURL),
			fetch:      fetchGoogleIdentity,
		}
	}

	if cfg.GitHub.Enabled() {
		p.byName[ProviderGitHub] = &Provider{
			Name: ProviderGitHub,
			config: &oauth2.Config{
				ClientID:     cfg.GitHub.ClientID,
				ClientSecret: cfg.GitHub.ClientSecret,
				Endpoint:     endpoint(endpoints.GitHub, cfg.GitHub),
				RedirectURL:  base + "/api/auth/github/callback",
				Scopes:       []string{"read:user", "user:email"},
			},
			profileURL: strings.TrimRight(orDefault(cfg.GitHub.APIURL, githubAPIURL), "/"),
			fetch:      fetchGitHubIdentity,
		}
	}

	return p
}

// endpoint applies the configured overrides to a public endpoint
func endpoint(public oauth2.Endpoint, cfg configs.OAuthClientConfig) oauth2.Endpoint {
	public.AuthURL = orDefault(cfg.AuthURL, public.AuthURL)
	public.TokenURL = orDefault(cfg.TokenURL, public.TokenURL)
	return public
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// Get returns a provider by name
func (p *Providers) Get(name string) (*Provider, bool) {
	provider, ok := p.byName[name]
	return provider, ok
}

// Names lists the enabled providers in alphabetical order
func (p *Providers) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewState returns a random value for the OAuth state parameter
func NewState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGoogleIdentity(ctx context.Context, client *http.Client, profileURL string) (domain.Identity, error) {
	var info struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := getJSON(ctx, client, profileURL, &info); err != nil {
		return domain.Identity{}, err
	}
	if info.Email == "" || !info.EmailVerified {
		return domain.Identity{}, ErrNoEmail
	}
	return domain.Identity{Email: info.Email, Name: info.Name, Image: info.Picture}, nil
}

func fetchGitHubIdentity(ctx context.Context, client *http.Client, apiURL string) (domain.Identity, error) {
	var user struct {
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := getJSON(ctx, client, apiURL+"/user", &user); err != nil {
		return domain.Identity{}, err
	}

	identity := domain.Identity{Email: user.Email, Name: user.Name, Image: user.AvatarURL}
	if identity.Name == "" {
		identity.Name = user.Login
	}
	if identity.Email != "" {
		return identity, nil
	}

	// Private emails only show up on /user/emails
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(ctx, client, apiURL+"/user/emails", &emails); err != nil {
		return domain.Identity{}, err
	}
	for _, e := range emails {
		if e.Primary && e.Verified {
			identity.Email = e.Email
			return identity, nil
		}
	}
	return domain.Identity{}, ErrNoEmail
}
