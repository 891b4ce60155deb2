// Package shopify Shopify Admin API(REST, GraphQL)로 platform.Gateway를 구현합니다.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/fetcher"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	"github.com/darkkaiser/product-enricher/internal/platform"
)

const component = "platform.shopify"

const accessTokenHeader = "X-Shopify-Access-Token"

// Client Shopify Admin API 클라이언트입니다.
type Client struct {
	fetcher fetcher.Fetcher

	// baseURL https://{shop}/admin/api/{version}
	baseURL     string
	accessToken string
}

var _ platform.Gateway = (*Client)(nil)

// New 설정에 따라 속도 제한과 재시도가 적용된 Client를 생성합니다.
func New(cfg config.ShopifyConfig) *Client {
	f := fetcher.New(fetcher.Config{
		Name:       "shopify",
		Timeout:    cfg.RequestTimeout,
		UserAgent:  version.UserAgent(config.AppName),
		RateLimit:  cfg.RequestsPerSecond,
		Burst:      cfg.Burst,
		MaxRetries: cfg.MaxRetries,
	})

	shop := strings.TrimRight(strings.TrimSpace(cfg.ShopDomain), "/")
	if !strings.HasPrefix(shop, "http://") && !strings.HasPrefix(shop, "https://") {
		shop = "https://" + shop
	}

	return NewClient(f, shop+"/admin/api/"+cfg.APIVersion, cfg.AccessToken)
}

// NewClient 주어진 Fetcher와 API 기본 주소로 Client를 생성합니다.
func NewClient(f fetcher.Fetcher, baseURL, accessToken string) *Client {
	return &Client{
		fetcher:     f,
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
	}
}

func (c *Client) header() http.Header {
	h := make(http.Header)
	h.Set(accessTokenHeader, c.accessToken)
	return h
}

// rest REST 엔드포인트를 호출합니다. path는 baseURL 이후의 경로입니다. (예: /products/1.json)
func (c *Client) rest(ctx context.Context, method, path string, payload any, out any) error {
	body, err := fetcher.DoJSON(ctx, c.fetcher, method, c.baseURL+path, c.header(), payload)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(err, apperrors.ParsingFailed, "Shopify REST 응답을 해석하지 못했습니다")
	}
	return nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphql GraphQL 쿼리를 실행하고 data 필드를 out에 디코딩합니다.
//
// 최상위 errors 배열이 있으면 실패로 처리합니다. 에러 코드가 THROTTLED이면 Unavailable,
// 그 외에는 ExecutionFailed로 분류합니다.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := fetcher.DoJSON(ctx, c.fetcher, http.MethodPost, c.baseURL+"/graphql.json", c.header(), graphQLRequest{
		Query:     strings.TrimSpace(query),
		Variables: variables,
	})
	if err != nil {
		return err
	}

	if errs := gjson.GetBytes(body, "errors"); errs.Exists() && len(errs.Array()) > 0 {
		return graphQLErrorsToError(errs)
	}

	data := gjson.GetBytes(body, "data")
	if !data.Exists() || data.Type == gjson.Null {
		return apperrors.New(apperrors.ParsingFailed, "Shopify GraphQL 응답에 data 필드가 없습니다")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(data.Raw), out); err != nil {
		return apperrors.Wrap(err, apperrors.ParsingFailed, "Shopify GraphQL 응답을 해석하지 못했습니다")
	}
	return nil
}

func graphQLErrorsToError(errs gjson.Result) error {
	var messages []string
	errType := apperrors.ExecutionFailed

	errs.ForEach(func(_, e gjson.Result) bool {
		messages = append(messages, e.Get("message").String())
		if strings.EqualFold(e.Get("extensions.code").String(), "THROTTLED") {
			errType = apperrors.Unavailable
		}
		return true
	})

	return apperrors.Newf(errType, "Shopify GraphQL 요청이 실패했습니다: %s", strings.Join(messages, "; "))
}

// userError GraphQL mutation이 반환하는 userErrors 항목입니다.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// userErrorsToError userErrors를 AppError로 변환합니다. 항목이 없으면 nil을 반환합니다.
// 대상 리소스가 존재하지 않는다는 메시지이면 NotFound, 그 외에는 ExecutionFailed입니다.
func userErrorsToError(action string, errs []userError) error {
	if len(errs) == 0 {
		return nil
	}

	errType := apperrors.ExecutionFailed
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if isNotFoundMessage(msg) {
			errType = apperrors.NotFound
		}
		if len(e.Field) > 0 {
			msg = strings.Join(e.Field, ".") + ": " + msg
		}
		parts = append(parts, msg)
	}

	return apperrors.Newf(errType, "Shopify %s 요청이 거부되었습니다: %s", action, strings.Join(parts, "; "))
}

func isNotFoundMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "not found") || strings.Contains(msg, "could not find")
}

// formatMoney 가격을 Shopify가 요구하는 소수점 2자리 문자열로 변환합니다.
func formatMoney(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func productPath(productID int64, suffix string) string {
	return fmt.Sprintf("/products/%d%s", productID, suffix)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
