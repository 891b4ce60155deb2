// Package competitor 외부 쇼핑 검색 API에서 유사 상품의 판매 가격을 수집합니다.
//
// 수집된 가격은 가격 엔진의 벤치마크 표본으로만 사용되며, 조회 실패는 파이프라인을 중단시키지
// 않습니다. 호출자는 에러를 기록한 뒤 벤치마크 없이 진행합니다.
package competitor

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/fetcher"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
)

const component = "competitor"

// maxQueryLength 검색어로 사용할 상품명의 최대 길이 (룬 단위)
const maxQueryLength = 80

// Source 유사 상품의 경쟁 가격을 조회하는 인터페이스입니다.
type Source interface {
	SearchPrices(ctx context.Context, query string) ([]float64, error)
}

// Client SerpAPI 형식(GET {endpoint}?q=&api_key=&engine=)의 쇼핑 검색 API 클라이언트입니다.
type Client struct {
	fetcher   fetcher.Fetcher
	endpoint  string
	apiKey    string
	engine    string
	pricePath string
}

var _ Source = (*Client)(nil)

// New 설정에 따라 Source를 생성합니다. API 키가 없으면 nil을 반환하며, 이 경우 벤치마크는 생략됩니다.
func New(cfg config.CompetitorConfig) Source {
	if !cfg.Enabled() {
		return nil
	}

	f := fetcher.New(fetcher.Config{
		Name:          component,
		Timeout:       cfg.RequestTimeout,
		UserAgent:     version.UserAgent(config.AppName),
		MaxRetries:    cfg.MaxRetries,
		MinRetryDelay: 500 * time.Millisecond,
		MaxRetryDelay: 4 * time.Second,
	})

	return NewClient(f, cfg)
}

// NewClient 주어진 Fetcher로 Client를 생성합니다.
func NewClient(f fetcher.Fetcher, cfg config.CompetitorConfig) *Client {
	return &Client{
		fetcher:   f,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		engine:    cfg.Engine,
		pricePath: cfg.PricePath,
	}
}

// SearchPrices query로 검색하여 응답에 포함된 가격 목록을 반환합니다.
// 해석할 수 없는 가격 항목은 건너뜁니다.
func (c *Client) SearchPrices(ctx context.Context, query string) ([]float64, error) {
	query = strutil.Truncate(strutil.NormalizeSpaces(query), maxQueryLength)
	if query == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "검색어가 비어있습니다")
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "경쟁 가격 검색 API 주소가 올바르지 않습니다")
	}
	params := u.Query()
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	if c.engine != "" {
		params.Set("engine", c.engine)
	}
	u.RawQuery = params.Encode()

	body, err := fetcher.DoJSON(ctx, c.fetcher, http.MethodGet, u.String(), nil, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.UnderlyingType(err), "경쟁 가격을 조회하지 못했습니다")
	}

	if !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "경쟁 가격 검색 응답이 올바른 JSON이 아닙니다")
	}

	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "경쟁 가격 검색 API가 에러를 반환했습니다: %s", msg.String())
	}

	prices := ExtractPrices(body, c.pricePath)

	applog.WithComponentAndFields(component, applog.Fields{
		"query":   query,
		"samples": len(prices),
	}).Debug("경쟁 가격 조회 완료")

	return prices, nil
}

// ExtractPrices JSON 본문에서 gjson 경로에 해당하는 가격을 모두 추출합니다.
// 숫자 값과 "$1,234.50" 같은 문자열 값을 모두 허용하며 0 이하의 값은 제외합니다.
func ExtractPrices(body []byte, path string) []float64 {
	var prices []float64

	collect := func(v gjson.Result) {
		if p, ok := parsePrice(v); ok {
			prices = append(prices, p)
		}
	}

	result := gjson.GetBytes(body, path)
	if result.IsArray() {
		result.ForEach(func(_, v gjson.Result) bool {
			collect(v)
			return true
		})
	} else if result.Exists() {
		collect(result)
	}

	return prices
}

func parsePrice(v gjson.Result) (float64, bool) {
	var p float64
	switch v.Type {
	case gjson.Number:
		p = v.Float()
	case gjson.String:
		s := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' {
				return r
			}
			return -1
		}, v.Str)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		p = f
	default:
		return 0, false
	}

	if p <= 0 {
		return 0, false
	}
	return p, true
}
