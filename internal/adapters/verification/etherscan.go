package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// Etherscan API response texts the verifier acts on
const (
	statusPending         = "Pending in queue"
	statusPass            = "Pass - Verified"
	statusAlreadyVerified = "Already Verified"
	statusFailPrefix      = "Fail - "
	alreadyVerifiedSubmit = "already verified"

	codeFormatStandardJSON = "solidity-standard-json-input"
)

// apiResponse is the envelope every Etherscan-compatible endpoint returns
type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func (r apiResponse) ok() bool {
	return r.Status == "1"
}

// resultString returns the result when the API sent a plain string
func (r apiResponse) resultString() string {
	var s string
	if err := json.Unmarshal(r.Result, &s); err != nil {
		return strings.TrimSpace(string(r.Result))
	}
	return s
}

// sourceCodeEntry is one element of the getsourcecode result
type sourceCodeEntry struct {
	SourceCode      string `json:"SourceCode"`
	ContractName    string `json:"ContractName"`
	CompilerVersion string `json:"CompilerVersion"`
}

// submission is the form posted to verifysourcecode
type submission struct {
	Address         string
	SourceCode      string
	ContractName    string
	CompilerVersion string
	ConstructorArgs string
}

// etherscanClient talks to one Etherscan-compatible explorer API. Every
// request waits on the shared limiter first.
type etherscanClient struct {
	apiURL  string
	apiKey  string
	chainID uint64
	http    *http.Client
	limiter *rate.Limiter
}

// isVerified reports whether the explorer already has source for address
func (c *etherscanClient) isVerified(ctx context.Context, address string) (bool, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "getsourcecode")
	params.Set("address", address)

	resp, err := c.get(ctx, params)
	if err != nil {
		return false, err
	}
	if !resp.ok() {
		return false, fmt.Errorf("getsourcecode: %s", resp.resultString())
	}

	var entries []sourceCodeEntry
	if err := json.Unmarshal(resp.Result, &entries); err != nil {
		return false, fmt.Errorf("getsourcecode: unexpected result: %w", err)
	}
	return len(entries) > 0 && entries[0].SourceCode != "", nil
}

// submit posts the source and returns the explorer's GUID. A submission the
// explorer reports as already verified returns alreadyVerified=true.
func (c *etherscanClient) submit(ctx context.Context, s submission) (guid string, alreadyVerified bool, err error) {
	form := url.Values{}
	form.Set("apikey", c.apiKey)
	form.Set("module", "contract")
	form.Set("action", "verifysourcecode")
	form.Set("contractaddress", s.Address)
	form.Set("sourceCode", s.SourceCode)
	form.Set("codeformat", codeFormatStandardJSON)
	form.Set("contractname", s.ContractName)
	form.Set("compilerversion", s.CompilerVersion)
	// The misspelling is part of the Etherscan API.
	form.Set("constructorArguements", s.ConstructorArgs)

	resp, err := c.post(ctx, form)
	if err != nil {
		return "", false, err
	}

	result := resp.resultString()
	if !resp.ok() {
		if strings.Contains(strings.ToLower(result), alreadyVerifiedSubmit) {
			return "", true, nil
		}
		return "", false, fmt.Errorf("verifysourcecode rejected: %s", result)
	}
	return result, false, nil
}

// checkStatus returns the explorer's status text for a submission
func (c *etherscanClient) checkStatus(ctx context.Context, guid string) (string, error) {
	params := url.Values{}
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	resp, err := c.get(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.resultString(), nil
}

func (c *etherscanClient) get(ctx context.Context, params url.Values) (*apiResponse, error) {
	params.Set("apikey", c.apiKey)
	if c.chainID != 0 {
		params.Set("chainid", strconv.FormatUint(c.chainID, 10))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

func (c *etherscanClient) post(ctx context.Context, form url.Values) (*apiResponse, error) {
	target := c.apiURL
	if c.chainID != 0 {
		target += "?chainid=" + strconv.FormatUint(c.chainID, 10)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(ctx, req)
}

func (c *etherscanClient) do(ctx context.Context, req *http.Request) (*apiResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read explorer response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer returned %s", res.Status)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode explorer response: %w", err)
	}
	return &resp, nil
}
