package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/misterexcel/FutDAO/client"
	"github.com/misterexcel/FutDAO/tx"
	"github.com/misterexcel/FutDAO/types"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type nftArguments struct {
	Url         string
	Owner       string
	Name        string
	Description string
	Image       string
	Attributes  []string
	Price       uint64
}

var nftArgs nftArguments

var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "List, mint and buy collectibles",
}

var nftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collectibles",
	Args:  cobra.NoArgs,
	RunE:  nftListRun,
}

var nftMintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Mint a collectible owned by the connected member",
	Args:  cobra.NoArgs,
	RunE:  nftMintRun,
}

var nftBuyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Buy a listed collectible",
	Args:  cobra.ExactArgs(1),
	RunE:  nftBuyRun,
}

func init() {
	urlFlag(nftCmd, &nftArgs.Url)
	nftListCmd.Flags().StringVarP(&nftArgs.Owner, "owner", "o", "", "only show collectibles held by this address")
	nftMintCmd.Flags().StringVarP(&nftArgs.Name, "name", "n", "", "collectible name")
	nftMintCmd.Flags().StringVar(&nftArgs.Description, "description", "", "collectible description")
	nftMintCmd.Flags().StringVar(&nftArgs.Image, "image", "", "image url")
	nftMintCmd.Flags().StringArrayVarP(&nftArgs.Attributes, "attr", "a", nil, "trait as type=value, repeatable")
	nftMintCmd.Flags().Uint64VarP(&nftArgs.Price, "price", "p", 0, "list for sale at this price")
	_ = nftMintCmd.MarkFlagRequired("name")
	nftBuyCmd.Flags().Uint64VarP(&nftArgs.Price, "price", "p", 0, "price to pay, the listed price when unset")

	nftCmd.AddCommand(nftListCmd)
	nftCmd.AddCommand(nftMintCmd)
	nftCmd.AddCommand(nftBuyCmd)
}

// parseAttributes turns type=value pairs into traits. Numeric values are
// stored as numbers.
func parseAttributes(raw []string) ([]types.NFTAttribute, error) {
	for _, kv := range raw {
		if !strings.Contains(kv, "=") {
			return nil, fmt.Errorf("attribute %q is not type=value", kv)
		}
	}
	return lo.Map(raw, func(kv string, _ int) types.NFTAttribute {
		k, v, _ := strings.Cut(kv, "=")
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return types.NFTAttribute{TraitType: k, Value: n}
		}
		return types.NFTAttribute{TraitType: k, Value: v}
	}), nil
}

func nftListRun(cmd *cobra.Command, args []string) error {
	nfts, err := client.New(nftArgs.Url).NFTs(cmd.Context(), nftArgs.Owner)
	if err != nil {
		return err
	}
	renderNFTs(cmd.OutOrStdout(), nfts)
	return nil
}

func nftMintRun(cmd *cobra.Command, args []string) error {
	attrs, err := parseAttributes(nftArgs.Attributes)
	if err != nil {
		return err
	}
	mtx := &tx.MintNFTTx{
		Name:        nftArgs.Name,
		Description: nftArgs.Description,
		Image:       nftArgs.Image,
		Attributes:  attrs,
	}
	if cmd.Flags().Changed("price") {
		mtx.Price = lo.ToPtr(nftArgs.Price)
	}
	res, err := client.New(nftArgs.Url).MintNFT(cmd.Context(), mtx)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}

func nftBuyRun(cmd *cobra.Command, args []string) error {
	var price *uint64
	if cmd.Flags().Changed("price") {
		price = lo.ToPtr(nftArgs.Price)
	}
	res, err := client.New(nftArgs.Url).BuyNFT(cmd.Context(), args[0], price)
	if err != nil {
		return err
	}
	renderResult(cmd.OutOrStdout(), res)
	return nil
}
