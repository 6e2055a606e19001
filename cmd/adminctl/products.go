package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simp-lee/adminboard/internal/domain"
	"github.com/simp-lee/adminboard/internal/source"
	"github.com/simp-lee/adminboard/internal/tableview"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	RunE:  runProductsList,
}

func init() {
	productsListCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	productsListCmd.Flags().IntVar(&flagSize, "page-size", 10, "rows per page")
	productsListCmd.Flags().StringVar(&flagSort, "sort", "", "sort expression, e.g. price or -price")
	productsListCmd.Flags().StringVar(&flagField, "field", "", "search field")
	productsListCmd.Flags().StringVar(&flagQuery, "q", "", "search query")
	productsListCmd.Flags().BoolVar(&flagAll, "all", false, "fetch every page and filter locally")

	productsCmd.AddCommand(productsListCmd)
}

func productViewConfig() tableview.Config[domain.Product] {
	return tableview.Config[domain.Product]{
		Columns: []tableview.Column[domain.Product]{
			{Key: "id", Title: "ID", Value: func(p domain.Product) string { return strconv.FormatUint(uint64(p.ID), 10) }, Sortable: true},
			{Key: "name", Title: "Name", Value: func(p domain.Product) string { return p.Name }, Sortable: true},
			{Key: "category", Title: "Category", Value: func(p domain.Product) string { return p.Category }, Sortable: true},
			{Key: "brand", Title: "Brand", Value: func(p domain.Product) string { return p.Brand }},
			{Key: "price", Title: "Price", Value: func(p domain.Product) string { return fmt.Sprintf("%.2f", p.Price) }, Sortable: true},
			{Key: "stock", Title: "Stock", Value: func(p domain.Product) string { return strconv.Itoa(p.Stock) }, Sortable: true},
			{Key: "rating", Title: "Rating", Value: func(p domain.Product) string { return fmt.Sprintf("%.1f", p.Rating) }, Sortable: true},
		},
		ID: func(p domain.Product) (string, bool) {
			if p.ID == 0 {
				return "", false
			}
			return strconv.FormatUint(uint64(p.ID), 10), true
		},
		SearchFields:       []string{"name", "category", "brand"},
		DefaultSearchField: "name",
	}
}

func runProductsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newSession(ctx)
	if err != nil {
		return err
	}

	if flagAll {
		products, err := client.FetchAllProducts(ctx)
		if err != nil {
			return err
		}
		view, err := tableview.NewClientView(productViewConfig(), products)
		if err != nil {
			return err
		}
		if err := applyLocalListFlags(view); err != nil {
			return err
		}
		renderView(view)
		return nil
	}

	result, err := client.SearchProducts(ctx, source.ListOptions{
		Page: flagPage, PageSize: flagSize, Sort: flagSort,
		SearchField: flagField, Query: flagQuery,
	})
	if err != nil {
		return err
	}
	view, err := tableview.NewServerView(productViewConfig(), result.Items, tableview.PageInfo{
		Total: result.Total, Page: result.Page,
		PageSize: result.PageSize, TotalPages: result.TotalPages,
	}, nil, nil)
	if err != nil {
		return err
	}
	renderView(view)
	return nil
}
