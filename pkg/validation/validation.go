// Package validation 설정값 검증에 사용하는 형식 검사 함수를 제공합니다.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	// hostnameRegex RFC 1123 호스트 이름 (라벨당 최대 63자)
	hostnameRegex = regexp.MustCompile(`^(?i)[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?(\.[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?)*$`)

	// apiVersionRegex Shopify Admin API 버전 (예: 2024-10, unstable)
	apiVersionRegex = regexp.MustCompile(`^(\d{4}-(0[1-9]|1[0-2])|unstable)$`)
)

// ValidateHostname 호스트 이름 형식을 검사합니다.
func ValidateHostname(host string) error {
	if host == "" {
		return fmt.Errorf("호스트 이름이 비어있습니다")
	}
	if len(host) > 253 || !hostnameRegex.MatchString(host) {
		return fmt.Errorf("유효한 호스트 이름이 아닙니다 (host=%q)", host)
	}
	return nil
}

// ValidateShopDomain 상점 도메인을 검사합니다. 스키마(https://)는 있어도 되지만 경로는 허용하지 않습니다.
//
//	my-shop.myshopify.com
//	https://my-shop.myshopify.com
func ValidateShopDomain(domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return fmt.Errorf("상점 도메인이 비어있습니다")
	}

	host := domain
	if strings.Contains(domain, "://") {
		u, err := url.Parse(domain)
		if err != nil {
			return fmt.Errorf("상점 도메인 파싱 실패 (input=%q): %w", domain, err)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return fmt.Errorf("상점 도메인 스키마는 http 또는 https만 허용됩니다 (input=%q)", domain)
		}
		if u.Path != "" && u.Path != "/" {
			return fmt.Errorf("상점 도메인에 경로를 포함할 수 없습니다 (input=%q)", domain)
		}
		host = u.Host
	}

	if h, port, found := strings.Cut(host, ":"); found {
		if err := ValidatePort(port); err != nil {
			return err
		}
		host = h
	}

	return ValidateHostname(host)
}

// ValidateAPIVersion Shopify Admin API 버전 문자열(YYYY-MM 또는 unstable)을 검사합니다.
func ValidateAPIVersion(v string) error {
	if !apiVersionRegex.MatchString(v) {
		return fmt.Errorf("API 버전 형식이 올바르지 않습니다: %q (예: 2024-10)", v)
	}
	return nil
}

// ValidatePort 포트 번호 문자열이 1-65535 범위인지 검사합니다.
func ValidatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("유효한 포트 범위(1-65535)가 아닙니다 (port=%s)", port)
	}
	return nil
}

// ValidateCORSOrigin CORS Origin 형식(Scheme://Host[:Port])을 검사합니다. "*"는 허용합니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}
	if origin == "" {
		return fmt.Errorf("CORS Origin은 비어있을 수 없습니다")
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패 (input=%q): %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin 스키마는 http 또는 https만 허용됩니다 (input=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin에는 경로, 쿼리, 사용자 정보를 포함할 수 없습니다 (input=%q)", origin)
	}
	if port := u.Port(); port != "" {
		if err := ValidatePort(port); err != nil {
			return err
		}
	}

	return ValidateHostname(u.Hostname())
}
