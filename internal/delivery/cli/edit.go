package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const maxImageSize = 10 << 20

type editOptions struct {
	product  string
	name     string
	price    string
	category string
	image    string
	yes      bool
}

// productSnapshot описывает товар, переданный флагом --product.
type productSnapshot struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *int64          `json:"category_id"`
	ImageURL   *string         `json:"image_url"`
}

func newEditCmd(root *rootOptions) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit one product and save it to the catalog",
		Long: "Opens an edit form for the given product, applies the changes passed as flags\n" +
			"and submits the result in a single request. Fields without a flag are sent unchanged.",
		Example: `  editctl edit --product '{"id":42,"name":"Pen","price":15000,"category_id":3}' --price 12000
  editctl edit --product @pen.json --image ./pen.png --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEdit(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.product, "product", "", "product snapshot as JSON or @file")
	f.StringVar(&opts.name, "name", "", "new product name")
	f.StringVar(&opts.price, "price", "", "new price")
	f.StringVar(&opts.category, "category", "", "new category id, empty to clear")
	f.StringVar(&opts.image, "image", "", "path to a new jpeg or png image")
	f.BoolVarP(&opts.yes, "yes", "y", false, "do not wait for Enter after the result message")
	_ = cmd.MarkFlagRequired("product")

	return cmd
}

func runEdit(cmd *cobra.Command, root *rootOptions, opts *editOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	log := root.logger(cmd)

	product, err := loadProduct(opts.product)
	if err != nil {
		return err
	}

	api, err := root.catalogAPI(log)
	if err != nil {
		return err
	}

	ack := newTerminalAcknowledger(cmd.InOrStdin(), out, !opts.yes)
	callbacks := usecase.Callbacks{
		OnSave: func(context.Context) {
			fmt.Fprintf(cmd.ErrOrStderr(), "product %d saved\n", product.ID)
		},
		OnClose: func(context.Context) {
			log.Debugf("edit of product %d closed", product.ID)
		},
	}

	wf := usecase.NewEditWorkflow(ctx, product, callbacks, api, ack, log)
	if err := wf.WaitReady(ctx); err != nil {
		return err
	}

	if banner, ok := wf.State().Error(); ok {
		fmt.Fprintln(cmd.ErrOrStderr(), banner)
	}

	if err := applyFlags(cmd, wf.State(), opts); err != nil {
		return err
	}

	printView(out, wf.State().Snapshot())

	if _, err := wf.Submit(ctx); err != nil {
		return err
	}

	return nil
}

// applyFlags переносит в черновик только явно переданные флаги.
func applyFlags(cmd *cobra.Command, state *usecase.EditFormState, opts *editOptions) error {
	f := cmd.Flags()

	if f.Changed("name") {
		if err := state.SetName(opts.name); err != nil {
			return err
		}
	}

	if f.Changed("price") {
		if err := state.SetPrice(opts.price); err != nil {
			return err
		}
	}

	if f.Changed("category") {
		if err := state.SetCategory(opts.category); err != nil {
			return err
		}
	}

	if f.Changed("image") {
		image, err := loadImage(opts.image)
		if err != nil {
			return err
		}
		if err := state.SetPendingImage(image); err != nil {
			return err
		}
	}

	return nil
}

// loadProduct принимает JSON напрямую или путь к файлу с префиксом @.
func loadProduct(arg string) (*domain.Product, error) {
	data := []byte(arg)
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	var snap productSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, e.Wrap("--product", fmt.Errorf("%w: %v", e.ErrStatusBadRequest, err))
	}
	if snap.ID <= 0 {
		return nil, e.Wrap("--product", e.ErrInvalidProductID)
	}

	return domain.NewProduct(snap.ID, snap.Name, snap.Price, snap.CategoryID, snap.ImageURL), nil
}

// loadImage читает файл изображения и определяет тип по содержимому.
func loadImage(path string) (*domain.PendingImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if len(data) > maxImageSize {
		return nil, e.Wrap(path, e.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, e.Wrap(path, e.ErrNoImages)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	return domain.NewPendingImage(filepath.Base(path), mimeType, data), nil
}

func printView(out io.Writer, view *usecase.EditView) {
	fmt.Fprintf(out, "Product #%d\n", view.ProductID)
	fmt.Fprintf(out, "  name:     %s\n", view.Name)
	fmt.Fprintf(out, "  price:    %s\n", view.Price)
	fmt.Fprintf(out, "  category: %s\n", categoryLabel(view))

	switch {
	case view.PendingImage != nil:
		fmt.Fprintf(out, "  image:    %s (%s, %d bytes, new)\n", view.PendingImage.Name, view.PendingImage.MimeType, view.PendingImage.Size)
	case view.ImageURL != "":
		fmt.Fprintf(out, "  image:    %s\n", view.ImageURL)
	}
}

func categoryLabel(view *usecase.EditView) string {
	if view.CategoryID == "" {
		return "-"
	}

	for _, c := range view.Categories {
		if strconv.FormatInt(c.ID, 10) == view.CategoryID {
			return fmt.Sprintf("%s (%s)", c.Name, view.CategoryID)
		}
	}

	return view.CategoryID
}
