package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-editor/internal/domain"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/e"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	categoriesPath = "/api/categories"
	productsPath   = "/api/products"

	maxErrorBodySize = 1 << 16
)

// HTTPClient описывает подмножество http.Client, которое использует Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client ходит в удалённый каталог товаров.
type Client struct {
	base   *url.URL
	client HTTPClient
	logger logger.Logger
}

// NewClient создаёт клиент каталога. Базовый адрес обязателен.
func NewClient(baseURL string, client HTTPClient, logger logger.Logger) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, e.Wrap("catalogapi: base URL", e.ErrMissingEnvVariable)
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, e.Wrap("catalogapi: parse base URL", err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		base:   parsed,
		client: client,
		logger: logger,
	}, nil
}

type categoryModel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type messageModel struct {
	Message string `json:"message"`
}

type errorModel struct {
	Error string `json:"error"`
}

// ListCategories возвращает все категории каталога в порядке ответа.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	req, err := c.newRequest(ctx, http.MethodGet, categoriesPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, e.Wrap(whereami.WhereAmI(), c.errorFromResponse(resp))
	}

	var models []categoryModel
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, e.Wrap("catalogapi: decode categories", errors.Join(e.ErrUnexpectedResponse, err))
	}

	categories := make([]domain.Category, 0, len(models))
	for _, m := range models {
		categories = append(categories, *domain.NewCategory(m.ID, m.Name))
	}

	return categories, nil
}

// UpdateProduct отправляет один PUT-запрос с multipart-формой товара.
func (c *Client) UpdateProduct(ctx context.Context, in *usecase.UpdateProductReq) (*usecase.UpdateProductRes, error) {
	contentType, body, err := buildUpdateForm(in)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	endpoint := path.Join(productsPath, url.PathEscape(strconv.FormatInt(in.ProductID, 10)))
	req, err := c.newRequest(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, e.Wrap(whereami.WhereAmI(), c.errorFromResponse(resp))
	}

	// Товар уже обновлён, поэтому нечитаемое тело ответа не считается ошибкой
	var payload messageModel
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warnf("catalogapi: decode update response for product %d: %v", in.ProductID, err)
	}

	return usecase.NewUpdateProductRes(payload.Message), nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, e.Wrap(fmt.Sprintf("catalogapi: %s %s", req.Method, req.URL.Path), err)
	}

	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(endpoint), body)
	if err != nil {
		return nil, e.Wrap("catalogapi: build request", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

func (c *Client) resolve(endpoint string) string {
	ref := &url.URL{Path: strings.TrimPrefix(endpoint, "/")}
	return c.base.ResolveReference(ref).String()
}

// errorFromResponse читает поле error из тела ответа, если оно есть.
func (c *Client) errorFromResponse(resp *http.Response) error {
	apiErr := &usecase.APIError{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if len(body) > 0 {
		var payload errorModel
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
	}

	return apiErr
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
