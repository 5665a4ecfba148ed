package gmail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/handsfree/internal/utils"
	"github.com/manifoldco/promptui"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	ScopeSend     = "https://www.googleapis.com/auth/gmail.send"
	ScopeReadonly = "https://www.googleapis.com/auth/gmail.readonly"
	ScopeModify   = "https://www.googleapis.com/auth/gmail.modify"
)

// AuthConfig locates the OAuth client secrets, the cached token and
// the scopes to request on consent.
type AuthConfig struct {
	CredentialsPath string   `json:"credentials_path"`
	TokenPath       string   `json:"token_path"`
	Scopes          []string `json:"scopes"`
}

var DefaultAuth = AuthConfig{
	CredentialsPath: "credentials.json",
	TokenPath:       "token.json",
	Scopes:          []string{ScopeSend},
}

// consentFlow runs the interactive browser authorization. Variable so
// that tests may swap it out.
var consentFlow = runLocalServerFlow

// NewService authenticates the user and returns a ready Gmail service.
// Cached tokens are reused and refreshed, the interactive consent flow
// only runs when no usable token exists.
func NewService(ctx context.Context, conf AuthConfig) (*gmailapi.Service, error) {
	oauthConf, err := oauthConfig(conf)
	if err != nil {
		return nil, err
	}
	tok, err := obtainToken(ctx, oauthConf, conf)
	if err != nil {
		return nil, err
	}
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(oauthConf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to build gmail service: %w", err)
	}
	return svc, nil
}

func oauthConfig(conf AuthConfig) (*oauth2.Config, error) {
	b, err := os.ReadFile(conf.CredentialsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("credentials file not found at '%v'. Please download your OAuth 2.0 Desktop Client credentials and save them there", conf.CredentialsPath)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	oauthConf, err := google.ConfigFromJSON(b, conf.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file '%v': %w", conf.CredentialsPath, err)
	}
	return oauthConf, nil
}

// obtainToken loads the cached token, refreshing it when expired. A
// failed refresh drops the cache and falls back to the consent flow,
// which runs at most once.
func obtainToken(ctx context.Context, oauthConf *oauth2.Config, conf AuthConfig) (*oauth2.Token, error) {
	tok, err := tokenFromFile(conf.TokenPath)
	if err == nil {
		if tok.Valid() {
			return tok, nil
		}
		if tok.RefreshToken != "" {
			ancli.PrintOK("refreshing expired credentials\n")
			refreshed, refreshErr := oauthConf.TokenSource(ctx, tok).Token()
			if refreshErr == nil {
				if saveErr := saveToken(conf.TokenPath, refreshed); saveErr != nil {
					ancli.Warnf("failed to save refreshed token: %v\n", saveErr)
				}
				return refreshed, nil
			}
			ancli.Warnf("failed to refresh token: %v\n", refreshErr)
			if rmErr := os.Remove(conf.TokenPath); rmErr == nil {
				ancli.Warnf("removed invalid token file: '%v'\n", conf.TokenPath)
			}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		ancli.Warnf("failed to load token file '%v': %v, will re-authenticate\n", conf.TokenPath, err)
	}

	ancli.PrintOK("no valid credentials found, initiating authorization flow\n")
	tok, err = consentFlow(ctx, oauthConf)
	if err != nil {
		return nil, fmt.Errorf("authorization flow failed: %w", err)
	}
	if err := saveToken(conf.TokenPath, tok); err != nil {
		ancli.Warnf("failed to save token: %v\n", err)
	} else {
		ancli.Okf("credentials saved to: '%v'\n", conf.TokenPath)
	}
	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := utils.ReadAndUnmarshal(path, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	return utils.CreateFile(path, tok)
}

type authCode struct {
	code string
	err  error
}

// runLocalServerFlow drives the desktop consent dance: a loopback
// redirect server on an ephemeral port, the system browser pointed at
// the consent URL, and a manual paste fallback when no browser opens.
func runLocalServerFlow(ctx context.Context, oauthConf *oauth2.Config) (*oauth2.Token, error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start loopback listener: %w", err)
	}
	defer lis.Close()
	oauthConf.RedirectURL = fmt.Sprintf("http://%v/", lis.Addr().String())
	state, err := randomState()
	if err != nil {
		return nil, err
	}
	authURL := oauthConf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	codeChan := make(chan authCode, 2)
	srv := &http.Server{Handler: consentHandler(state, codeChan)}
	go func() {
		if serveErr := srv.Serve(lis); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			codeChan <- authCode{err: serveErr}
		}
	}()
	defer srv.Close()

	ancli.Okf("visit this URL to authorize: %v\n", authURL)
	if err := openBrowser(authURL); err != nil {
		ancli.Warnf("failed to open browser: %v\n", err)
		go promptForRedirect(state, codeChan)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case got := <-codeChan:
		if got.err != nil {
			return nil, got.err
		}
		tok, err := oauthConf.Exchange(ctx, got.code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return tok, nil
	}
}

func consentHandler(state string, codeChan chan<- authCode) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Browsers also ask for favicons on loopback redirects.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		code, err := codeFromQuery(r.URL.Query(), state)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			codeChan <- authCode{err: err}
			return
		}
		fmt.Fprint(w, "<html><body>Authorization complete. You may close this tab.</body></html>")
		codeChan <- authCode{code: code}
	})
}

func promptForRedirect(state string, codeChan chan<- authCode) {
	prompt := promptui.Prompt{
		Label: "Paste the full redirect URL from your browser",
	}
	raw, err := prompt.Run()
	if err != nil {
		codeChan <- authCode{err: fmt.Errorf("failed to read redirect URL: %w", err)}
		return
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		codeChan <- authCode{err: fmt.Errorf("failed to parse redirect URL: %w", err)}
		return
	}
	code, err := codeFromQuery(u.Query(), state)
	if err != nil {
		codeChan <- authCode{err: err}
		return
	}
	codeChan <- authCode{code: code}
}

func codeFromQuery(q url.Values, state string) (string, error) {
	if errMsg := q.Get("error"); errMsg != "" {
		return "", fmt.Errorf("authorization denied: %v", errMsg)
	}
	if q.Get("state") != state {
		return "", errors.New("state mismatch in authorization response")
	}
	code := q.Get("code")
	if code == "" {
		return "", errors.New("authorization response carried no code")
	}
	return code, nil
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func openBrowser(u string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", u)
	case "linux":
		cmd = exec.Command("xdg-open", u)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", u)
	default:
		return fmt.Errorf("unsupported platform: %v", runtime.GOOS)
	}
	return cmd.Start()
}
