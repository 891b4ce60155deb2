// Package alert 보강 실패를 텔레그램으로 운영자에게 알리는 백그라운드 서비스를 제공합니다.
//
// 파이프라인은 Notify로 메시지를 큐에 넣기만 하며, 실제 전송은 별도 고루틴이 초당 전송 한도를
// 지키면서 순서대로 처리합니다. 큐가 가득 차면 메시지를 버리고 경고 로그를 남깁니다.
package alert

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/darkkaiser/product-enricher/internal/config"
	"github.com/darkkaiser/product-enricher/internal/fetcher"
	apperrors "github.com/darkkaiser/product-enricher/internal/pkg/errors"
	"github.com/darkkaiser/product-enricher/internal/pkg/version"
	applog "github.com/darkkaiser/product-enricher/pkg/log"
	"github.com/darkkaiser/product-enricher/pkg/strutil"
)

const component = "alert.telegram"

const (
	// queueSize 전송 대기 중인 메시지의 최대 개수
	queueSize = 64

	// messageMaxLength 텔레그램 메시지 최대 길이(4096자)에서 여유를 둔 값
	messageMaxLength = 3900

	// drainTimeout 종료 시 큐에 남은 메시지를 보내는 데 허용하는 시간
	drainTimeout = 5 * time.Second

	httpClientTimeout = 15 * time.Second
)

// sender 텔레그램 봇 API 전송 인터페이스입니다.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Service 텔레그램 알림 서비스입니다. 설정이 없으면 모든 메서드가 아무 일도 하지 않습니다.
type Service struct {
	sender  sender
	chatID  int64
	limiter *rate.Limiter

	queue chan string

	runningMu sync.Mutex
	running   bool
}

// New 설정에 따라 알림 서비스를 생성합니다.
//
// 봇 토큰이 없으면 비활성화된 서비스를 반환합니다. 봇 API 초기화 시 토큰 확인(getMe)을 위해
// 네트워크 호출이 발생합니다.
func New(cfg config.TelegramConfig) (*Service, error) {
	if !cfg.Enabled() {
		return &Service{}, nil
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.Mask(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 API 클라이언트를 초기화합니다")

	// 요청 경로에 봇 토큰이 포함되므로 URL을 기록하는 LoggingFetcher는 사용하지 않습니다.
	client := fetcher.NewHTTPFetcher(httpClientTimeout, map[string][]string{
		"User-Agent": {version.UserAgent(config.AppName)},
	})

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. BotToken이 올바른지 확인해주세요")
	}

	return newService(bot, cfg.ChatID), nil
}

func newService(s sender, chatID int64) *Service {
	return &Service{
		sender: s,
		chatID: chatID,
		// 텔레그램 정책: 같은 채팅방에는 초당 1회
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		queue:   make(chan string, queueSize),
	}
}

// Enabled 알림이 실제로 전송되는지 반환합니다.
func (s *Service) Enabled() bool {
	return s.sender != nil
}

// Start 전송 고루틴을 시작합니다. ctx가 취소되면 남은 메시지를 최대한 보낸 뒤 wg.Done을 호출합니다.
func (s *Service) Start(ctx context.Context, wg *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.Enabled() {
		wg.Done()
		applog.WithComponent(component).Info("텔레그램 설정이 없어 알림 서비스를 비활성화합니다")
		return nil
	}

	if s.running {
		wg.Done()
		applog.WithComponent(component).Warn("알림 서비스가 이미 시작됨!!!")
		return nil
	}
	s.running = true

	go s.run(ctx, wg)

	applog.WithComponent(component).Info("알림 서비스 시작됨")

	return nil
}

// Notify 메시지를 전송 큐에 넣습니다. 호출자를 블록하지 않으며, 큐가 가득 차면 메시지를 버립니다.
func (s *Service) Notify(message string) {
	if !s.Enabled() || strings.TrimSpace(message) == "" {
		return
	}

	select {
	case s.queue <- message:
	default:
		applog.WithComponentAndFields(component, applog.Fields{
			"queue_size": queueSize,
		}).Warn("알림 큐가 가득 차서 메시지를 버립니다")
	}
}

func (s *Service) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"panic": r,
			}).Error("알림 전송 고루틴 비정상 종료: 패닉 발생")
		}
	}()

	for {
		select {
		case msg := <-s.queue:
			// 전송 도중 종료가 시작되어도 꺼낸 메시지는 끝까지 보냅니다.
			s.send(context.WithoutCancel(ctx), msg)

		case <-ctx.Done():
			s.drain()

			s.runningMu.Lock()
			s.running = false
			s.runningMu.Unlock()

			applog.WithComponent(component).Info("알림 서비스 중지됨")
			return
		}
	}
}

// drain 종료 시 큐에 남은 메시지를 제한 시간 안에서 최대한 전송합니다.
func (s *Service) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case msg := <-s.queue:
			s.send(ctx, msg)
		default:
			return
		}

		if ctx.Err() != nil {
			if remaining := len(s.queue); remaining > 0 {
				applog.WithComponentAndFields(component, applog.Fields{
					"remaining": remaining,
				}).Warn("종료 제한 시간 초과로 남은 알림을 버립니다")
			}
			return
		}
	}
}

func (s *Service) send(ctx context.Context, message string) {
	for _, chunk := range splitMessage(message, messageMaxLength) {
		if err := s.limiter.Wait(ctx); err != nil {
			return
		}

		if _, err := s.sender.Send(tgbotapi.NewMessage(s.chatID, chunk)); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": s.chatID,
				"error":   err.Error(),
			}).Error("텔레그램 메시지 전송 실패")
			return
		}
	}
}

// splitMessage 메시지를 줄 단위로 묶어 limit(룬 단위) 이하의 조각으로 나눕니다.
// 한 줄이 limit를 넘으면 룬 경계에서 강제로 자릅니다.
func splitMessage(message string, limit int) []string {
	if utf8.RuneCountInString(message) <= limit {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder
	size := 0

	flush := func() {
		if sb.Len() > 0 {
			chunks = append(chunks, sb.String())
			sb.Reset()
			size = 0
		}
	}

	for _, line := range strings.Split(message, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}

		needed := len(runes)
		if size > 0 {
			needed++
		}
		if size+needed > limit {
			flush()
			needed = len(runes)
		}
		if size > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(runes))
		size += needed
	}
	flush()

	return chunks
}
