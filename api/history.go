package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HistoryReq struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Proposal uint64 `form:"proposal"`
	Voter    string `form:"voter"`
	Address  string `form:"address"`
	Owner    string `form:"owner"`
	NFT      string `form:"nft"`
}

type Page[T any] struct {
	Items []T    `json:"items"`
	Total uint64 `json:"total"`
}

func bindHistory(c *gin.Context) (req HistoryReq, ok bool) {
	if err := c.ShouldBindQuery(&req); err != nil {
		abortInvalid(c, err)
		return req, false
	}
	return req, true
}

func writePage[T any](c *gin.Context, rows []T, total uint64, err error) {
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Code: CodeIndexer, Error: err.Error()})
		return
	}
	if rows == nil {
		rows = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{Items: rows, Total: total})
}

func (s *Server) handleHistoryProposals(c *gin.Context) {
	req, ok := bindHistory(c)
	if !ok {
		return
	}
	rows, total, err := s.indexer.GetProposals(req.Status, req.Page, req.PageSize)
	writePage(c, rows, total, err)
}

func (s *Server) handleHistoryVotes(c *gin.Context) {
	req, ok := bindHistory(c)
	if !ok {
		return
	}
	rows, total, err := s.indexer.GetVotes(req.Proposal, req.Voter, req.Page, req.PageSize)
	writePage(c, rows, total, err)
}

func (s *Server) handleHistoryTransfers(c *gin.Context) {
	req, ok := bindHistory(c)
	if !ok {
		return
	}
	rows, total, err := s.indexer.GetTransfers(req.Address, req.Page, req.PageSize)
	writePage(c, rows, total, err)
}

func (s *Server) handleHistoryMints(c *gin.Context) {
	req, ok := bindHistory(c)
	if !ok {
		return
	}
	rows, total, err := s.indexer.GetMints(req.Owner, req.Page, req.PageSize)
	writePage(c, rows, total, err)
}

func (s *Server) handleHistorySales(c *gin.Context) {
	req, ok := bindHistory(c)
	if !ok {
		return
	}
	rows, total, err := s.indexer.GetSales(req.NFT, req.Page, req.PageSize)
	writePage(c, rows, total, err)
}
