package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Abhi9av-Git/LeaveEase/config"
)

// SMSClient posts messages to a Twilio-compatible REST gateway.
// Unconfigured (no account SID) it is a no-op, so dev environments run
// without an SMS account.
type SMSClient struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

func NewSMSClient(cfg *config.Config) *SMSClient {
	return &SMSClient{
		accountSID: cfg.SMSAccountSID,
		authToken:  cfg.SMSAuthToken,
		from:       cfg.SMSFromNumber,
		baseURL:    cfg.SMSAPIBaseURL,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SMSClient) Enabled() bool { return s.accountSID != "" && s.from != "" }

func (s *SMSClient) Send(to, body string) error {
	if !s.Enabled() {
		return nil
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", s.from)
	form.Set("Body", body)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
