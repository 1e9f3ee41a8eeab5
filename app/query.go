package app

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	abcitypes "github.com/cometbft/cometbft/abci/types"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/misterexcel/FutDAO/state"
)

const (
	CodeOK       uint32 = 0
	CodeNotFound uint32 = 1
	CodeBadQuery uint32 = 2
	CodeNoRoute  uint32 = 404
)

func (app *LedgerApp) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	path := req.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	q, ok := app.queriers[path]
	if !ok {
		res = &abcitypes.ResponseQuery{}
		res.Code = CodeNoRoute
		return
	}
	res, err = q.Query(ctx, req)
	if res != nil {
		res.Height = app.ledger.Version()
	}
	return
}

type Querier interface {
	Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error)
}

// AccountQuerier answers with the connected account when req.Data holds its
// address.
type AccountQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewAccountQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *AccountQuerier) {
	q = &AccountQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *AccountQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	a := q.ledger.CurrentAccount()
	if a == nil || (len(req.Data) > 0 && a.Address != string(req.Data)) {
		res.Code = CodeNotFound
		res.Log = state.ErrAccountNotFound.Error()
		return
	}
	res.Value, _ = json.Marshal(a)
	return
}

// ProposalQuerier lists proposals, or returns one when req.Data holds a
// decimal id.
type ProposalQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewProposalQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *ProposalQuerier) {
	q = &ProposalQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *ProposalQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) == 0 {
		res.Value, _ = json.Marshal(q.ledger.Proposals())
		return
	}
	id, err1 := strconv.ParseUint(string(req.Data), 10, 64)
	if err1 != nil {
		res.Code = CodeBadQuery
		res.Log = err1.Error()
		return
	}
	p := q.ledger.Proposal(id)
	if p == nil {
		res.Code = CodeNotFound
		res.Log = state.ErrProposalNotFound.Error()
		return
	}
	res.Value, _ = json.Marshal(p)
	return
}

type TransactionQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewTransactionQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *TransactionQuerier) {
	q = &TransactionQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *TransactionQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	res.Value, _ = json.Marshal(q.ledger.Transactions(string(req.Data)))
	return
}

type NFTQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewNFTQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *NFTQuerier) {
	q = &NFTQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *NFTQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	res.Value, _ = json.Marshal(q.ledger.NFTs(string(req.Data)))
	return
}

type StatusQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewStatusQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *StatusQuerier) {
	q = &StatusQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *StatusQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	res.Value, _ = json.Marshal(q.ledger.Status())
	return
}

// StoreQuerier returns the commitment leaf stored under the key in req.Data,
// e.g. "a" for the member account or "h0x..." for a hash index. The leaf
// bytes are JSON encoded like every other query value.
type StoreQuerier struct {
	ledger *state.Ledger
	logger cmtlog.Logger
}

func NewStoreQuerier(ledger *state.Ledger, logger cmtlog.Logger) (q *StoreQuerier) {
	q = &StoreQuerier{
		ledger: ledger,
		logger: logger,
	}
	return
}

func (q *StoreQuerier) Query(ctx context.Context, req *abcitypes.RequestQuery) (res *abcitypes.ResponseQuery, err error) {
	res = &abcitypes.ResponseQuery{}
	if len(req.Data) == 0 {
		res.Code = CodeBadQuery
		res.Log = "store key is empty"
		return
	}
	val, err1 := q.ledger.StoreValue(string(req.Data))
	if err1 != nil {
		q.logger.Error("read store fail", "key", string(req.Data), "err", err1)
		res.Code = CodeBadQuery
		res.Log = err1.Error()
		return
	}
	if val == nil {
		res.Code = CodeNotFound
		res.Log = "key not found"
		return
	}
	res.Key = req.Data
	res.Value, _ = json.Marshal(val)
	return
}
