package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/misterexcel/FutDAO/api"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/tx/handler"
	"github.com/misterexcel/FutDAO/types"
)

const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx reply from the node.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCode reports whether err is an APIError carrying code.
func IsCode(err error, code string) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Code == code
}

// Client talks to the node's HTTP API.
type Client struct {
	url  string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		url:  strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	u, err := url.JoinPath(c.url, path)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(bz)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	buf, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusMultipleChoices {
		var er api.ErrorResponse
		if err := json.Unmarshal(buf, &er); err != nil || er.Code == "" {
			return &APIError{Status: res.StatusCode, Message: strings.TrimSpace(string(buf))}
		}
		return &APIError{Status: res.StatusCode, Code: er.Code, Message: er.Error}
	}
	if out == nil || len(buf) == 0 {
		return nil
	}
	return json.Unmarshal(buf, out)
}

func (c *Client) Status(ctx context.Context) (st *types.LedgerStatus, err error) {
	err = c.do(ctx, http.MethodGet, "/status", nil, nil, &st)
	return
}

// Account returns the connected account, or nil when no wallet is
// connected.
func (c *Client) Account(ctx context.Context) (acnt *types.Account, err error) {
	err = c.do(ctx, http.MethodGet, "/wallet", nil, nil, &acnt)
	if IsCode(err, "account_not_found") {
		return nil, nil
	}
	return
}

func (c *Client) Connect(ctx context.Context) (acnt *types.Account, err error) {
	err = c.do(ctx, http.MethodPost, "/wallet/connect", nil, nil, &acnt)
	return
}

func (c *Client) Disconnect(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/wallet/disconnect", nil, nil, nil)
}

func (c *Client) Balance(ctx context.Context, address string) (uint64, error) {
	var res api.BalanceResponse
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(address)+"/balance", nil, nil, &res); err != nil {
		return 0, err
	}
	return res.Balance, nil
}

func (c *Client) VotingPower(ctx context.Context, address string) (uint64, error) {
	var res api.VotingPowerResponse
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(address)+"/voting-power", nil, nil, &res); err != nil {
		return 0, err
	}
	return res.VotingPower, nil
}

func (c *Client) Proposals(ctx context.Context) (ps []*types.Proposal, err error) {
	err = c.do(ctx, http.MethodGet, "/proposals", nil, nil, &ps)
	return
}

func (c *Client) Proposal(ctx context.Context, id uint64) (p *types.Proposal, err error) {
	err = c.do(ctx, http.MethodGet, "/proposals/"+strconv.FormatUint(id, 10), nil, nil, &p)
	return
}

func (c *Client) CreateProposal(ctx context.Context, ptx *tx.ProposalTx) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/proposals", nil, ptx, &res)
	return
}

func (c *Client) Vote(ctx context.Context, id uint64, choice types.VoteChoice) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/proposals/"+strconv.FormatUint(id, 10)+"/votes", nil, &tx.VoteTx{Vote: choice}, &res)
	return
}

func (c *Client) Execute(ctx context.Context, id uint64) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/proposals/"+strconv.FormatUint(id, 10)+"/execute", nil, nil, &res)
	return
}

func (c *Client) Settle(ctx context.Context, id uint64) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/proposals/"+strconv.FormatUint(id, 10)+"/settle", nil, nil, &res)
	return
}

func (c *Client) Transfer(ctx context.Context, to string, amount uint64) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/transfers", nil, &tx.TransferTx{To: to, Amount: amount}, &res)
	return
}

func (c *Client) Transactions(ctx context.Context, address string) (txs []*types.Transaction, err error) {
	q := url.Values{}
	if address != "" {
		q.Set("address", address)
	}
	err = c.do(ctx, http.MethodGet, "/transactions", q, nil, &txs)
	return
}

func (c *Client) NFTs(ctx context.Context, owner string) (nfts []*types.NFT, err error) {
	q := url.Values{}
	if owner != "" {
		q.Set("owner", owner)
	}
	err = c.do(ctx, http.MethodGet, "/nfts", q, nil, &nfts)
	return
}

func (c *Client) MintNFT(ctx context.Context, mtx *tx.MintNFTTx) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/nfts", nil, mtx, &res)
	return
}

// BuyNFT pays price, or the listed price when price is nil.
func (c *Client) BuyNFT(ctx context.Context, id string, price *uint64) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/nfts/"+url.PathEscape(id)+"/buy", nil, &api.BuyNFTReq{Price: price}, &res)
	return
}

func (c *Client) Broadcast(ctx context.Context, btx *tx.LedgerTx) (res *handler.Result, err error) {
	err = c.do(ctx, http.MethodPost, "/broadcast", nil, btx, &res)
	return
}

func (c *Client) Query(ctx context.Context, path string, data string) (res *api.QueryResponse, err error) {
	q := url.Values{}
	q.Set("path", path)
	if data != "" {
		q.Set("data", data)
	}
	err = c.do(ctx, http.MethodGet, "/abci_query", q, nil, &res)
	return
}

// History pages through one of the indexer tables: proposals, votes,
// transfers, mints or sales.
func History[T any](ctx context.Context, c *Client, kind string, filter url.Values, page int, pageSize int) (res *api.Page[T], err error) {
	q := url.Values{}
	for k, v := range filter {
		if len(v) > 0 && v[0] != "" {
			q[k] = v
		}
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	err = c.do(ctx, http.MethodGet, "/history/"+kind, q, nil, &res)
	return
}
