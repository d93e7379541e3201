package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"parley/internal/domain"
)

// Client talks to an exchange server. It is transport plumbing only; the
// envelopes it ferries are authenticated end to end by the parties.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for the exchange at base.
func NewClient(base string) *Client { return &Client{Base: base, HTTP: http.DefaultClient} }

// Post delivers env to its recipient's mailbox.
func (c *Client) Post(env domain.Envelope) error {
	return c.post("/envelope", env)
}

// Fetch returns up to limit envelopes waiting for party. limit <= 0
// means all. Envelopes remain queued until acked.
func (c *Client) Fetch(party domain.PartyID, limit int) ([]domain.Envelope, error) {
	u := "/mailbox/" + url.PathEscape(party.String())
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	var envs []domain.Envelope
	if err := c.getJSON(u, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// Ack removes the first count envelopes from party's mailbox.
func (c *Client) Ack(party domain.PartyID, count int) error {
	return c.post("/mailbox/"+url.PathEscape(party.String())+"/ack", struct {
		Count int `json:"count"`
	}{Count: count})
}

func (c *Client) post(path string, in any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("exchange post %s: %s", path, resp.Status)
	}
	return nil
}

func (c *Client) getJSON(path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("exchange get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
