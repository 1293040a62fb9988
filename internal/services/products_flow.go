package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adamstosho/GroChain-sub004/internal/models"
	"github.com/adamstosho/GroChain-sub004/internal/storage"
)

// browseCategories maps menu options to marketplace categories, in the
// order they are displayed.
var browseCategories = []struct {
	Option   string
	Label    string
	Category string
}{
	{"1", "Seeds", models.CategorySeeds},
	{"2", "Fertilizer", models.CategoryFertilizer},
	{"3", "Equipment", models.CategoryEquipment},
}

// BrowseFlow walks category selection then product selection, terminating
// with the product detail.
type BrowseFlow struct {
	store storage.Store
}

// NewBrowseFlow creates the product-browsing flow handler.
func NewBrowseFlow(store storage.Store) *BrowseFlow {
	return &BrowseFlow{store: store}
}

func (f *BrowseFlow) Name() string {
	return models.FlowBrowse
}

func (f *BrowseFlow) Handle(session *models.Session, tokens []string) (Reply, error) {
	fs := session.Flow()
	if fs.Browse == nil {
		fs.Browse = &models.BrowseDraft{}
	}
	draft := fs.Browse

	if len(tokens) == 0 {
		session.SetFlow(fs)
		return Reply{Text: f.categoryPrompt()}, nil
	}

	input := lastToken(tokens)

	if draft.Category == "" {
		category, ok := f.categoryFor(input)
		if !ok {
			return Reply{Text: "Unrecognized category.\n" + f.categoryPrompt()}, nil
		}
		draft.Category = category
		session.SetFlow(fs)

		products, err := f.store.GetProductsByCategory(category)
		if err != nil {
			return Reply{}, fmt.Errorf("list products for %s: %w", category, err)
		}
		if len(products) == 0 {
			return Reply{Text: "No products in stock for this category right now.\nPlease dial again later.", Close: true}, nil
		}
		return Reply{Text: productListing(products)}, nil
	}

	// Product selection step.
	products, err := f.store.GetProductsByCategory(draft.Category)
	if err != nil {
		return Reply{}, fmt.Errorf("list products for %s: %w", draft.Category, err)
	}
	if len(products) == 0 {
		return Reply{Text: "No products in stock for this category right now.\nPlease dial again later.", Close: true}, nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(products) {
		return Reply{Text: "Invalid selection.\n" + productListing(products)}, nil
	}

	product := products[choice-1]
	text := fmt.Sprintf("%s\nPrice: NGN %.0f per %s\nTo order, visit your nearest GroChain agent and quote %s.",
		product.Name, product.Price, product.Unit, product.ProductID)
	return Reply{Text: text, Close: true}, nil
}

func (f *BrowseFlow) categoryPrompt() string {
	var b strings.Builder
	b.WriteString("Marketplace - choose a category:")
	for _, c := range browseCategories {
		b.WriteString(fmt.Sprintf("\n%s. %s", c.Option, c.Label))
	}
	return b.String()
}

func (f *BrowseFlow) categoryFor(option string) (string, bool) {
	for _, c := range browseCategories {
		if c.Option == option {
			return c.Category, true
		}
	}
	return "", false
}

func productListing(products []*models.Product) string {
	var b strings.Builder
	b.WriteString("Select a product:")
	for i, p := range products {
		b.WriteString(fmt.Sprintf("\n%d. %s - NGN %.0f/%s", i+1, p.Name, p.Price, p.Unit))
	}
	return b.String()
}
