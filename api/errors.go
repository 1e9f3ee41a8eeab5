package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/misterexcel/FutDAO/state"
	"github.com/misterexcel/FutDAO/tx"
)

const (
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal_error"
	CodeIndexer        = "indexer_error"
)

type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

type errorCode struct {
	err    error
	status int
	code   string
}

var errorCodes = []errorCode{
	{state.ErrNotConnected, http.StatusUnauthorized, "not_connected"},
	{state.ErrConnection, http.StatusServiceUnavailable, "connection_error"},
	{state.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{state.ErrProposalNotFound, http.StatusNotFound, "proposal_not_found"},
	{state.ErrNftNotFound, http.StatusNotFound, "nft_not_found"},
	{state.ErrProposalNotActive, http.StatusConflict, "proposal_not_active"},
	{state.ErrVotingExpired, http.StatusConflict, "voting_expired"},
	{state.ErrProposalNotExecutable, http.StatusConflict, "proposal_not_executable"},
	{state.ErrNftNotForSale, http.StatusConflict, "nft_not_for_sale"},
	{state.ErrVotingNotEnded, http.StatusConflict, "voting_not_ended"},
	{state.ErrAlreadyVoted, http.StatusConflict, "already_voted"},
	{state.ErrInsufficientBalance, http.StatusUnprocessableEntity, "insufficient_balance"},
	{state.ErrInvalidVoteChoice, http.StatusBadRequest, "invalid_vote_choice"},
	{tx.ErrInvalidTx, http.StatusBadRequest, CodeInvalidRequest},
	{tx.ErrUnsupportedTxType, http.StatusBadRequest, CodeInvalidRequest},
	{tx.ErrUnmatchedTxType, http.StatusBadRequest, CodeInvalidRequest},
	{tx.ErrUnsupportedTxVersion, http.StatusBadRequest, CodeInvalidRequest},
	{tx.ErrHashExhausted, http.StatusInternalServerError, "hash_exhausted"},
}

// ErrorStatus maps err to its HTTP status and error code.
func ErrorStatus(err error) (status int, code string) {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.status, ec.code
		}
	}
	return http.StatusInternalServerError, CodeInternal
}

func abortWithError(c *gin.Context, err error) {
	status, code := ErrorStatus(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Error: err.Error()})
}

func abortInvalid(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Code: CodeInvalidRequest, Error: err.Error()})
}
