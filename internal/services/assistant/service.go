// Package assistant routes chat questions to the AI model, enriching
// portfolio questions with the current aggregation snapshot.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sumeetk/foliox/internal/common"
	"github.com/sumeetk/foliox/internal/interfaces"
)

// Service implements the AssistantService interface
type Service struct {
	ai        interfaces.AssistantClient
	portfolio interfaces.PortfolioService
	logger    *common.Logger
}

// NewService creates a new assistant service. The AI client may be nil when no
// API key is configured; Ask then reports the assistant as unavailable.
func NewService(ai interfaces.AssistantClient, portfolio interfaces.PortfolioService, logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		ai:        ai,
		portfolio: portfolio,
		logger:    logger,
	}
}

// ErrUnavailable is returned when no AI client is configured.
var ErrUnavailable = fmt.Errorf("AI assistant is not configured")

// Ask answers a free-text question. Questions mentioning the portfolio are
// answered with a risk-analysis prompt built from the latest snapshot; other
// questions get the general finance prompt.
func (s *Service) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "Hi 👋 I'm your FolioX AI assistant. Ask me anything about your portfolio.", nil
	}

	if s.ai == nil {
		return "", ErrUnavailable
	}

	var prompt string
	if strings.Contains(strings.ToLower(question), "portfolio") {
		s.logger.Debug().Msg("Portfolio question detected, attaching snapshot context")
		prompt = s.portfolioPrompt(ctx, question)
	} else {
		prompt = generalPrompt(question)
	}

	answer, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	return answer, nil
}

// portfolioPrompt builds the risk-analysis prompt from the latest snapshot.
// Without a snapshot it falls back to refreshing; if that also fails the
// question is answered without portfolio context.
func (s *Service) portfolioPrompt(ctx context.Context, question string) string {
	snap := s.portfolio.Snapshot()
	if snap == nil {
		fresh, err := s.portfolio.Refresh(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("No snapshot available for portfolio question")
			return generalPrompt(question)
		}
		snap = fresh
	}

	var sb strings.Builder
	sb.WriteString("You are a financial risk analysis assistant.\n\n")
	sb.WriteString("Analyze the portfolio using the information below and explain it clearly.\n\n")
	sb.WriteString("### Portfolio\n")
	fmt.Fprintf(&sb, "- Total Value: %.2f\n", snap.Summary.TotalValue)
	fmt.Fprintf(&sb, "- Diversification Score: %d / 100\n", snap.Summary.DiversificationScore)
	sb.WriteString("- Allocation by type:\n")
	for _, e := range snap.Summary.ByType {
		fmt.Fprintf(&sb, "  - %s: %d%%\n", e.Label, e.Percent)
	}
	sb.WriteString("- Holdings:\n")
	for _, h := range snap.Holdings {
		fmt.Fprintf(&sb, "  - %s: %d units at %.2f\n", h.Symbol, h.Quantity, h.CurrentPrice)
	}
	sb.WriteString("\n### Question\n")
	sb.WriteString(question)
	sb.WriteString(`

IMPORTANT RULES:
- Write at least 5 complete sentences.
- Do not summarize in one line.
- Keep the explanation practical and investor-focused.
- Do NOT include the prompt or question in your response.
`)
	return sb.String()
}

// generalPrompt builds the general finance Q&A prompt.
func generalPrompt(question string) string {
	return fmt.Sprintf(`You are a finance assistant.

Answer the question below in a structured and informative manner.

### Explanation
Explain the concept clearly in at least 4-5 sentences.

### Key Points
- Important idea 1
- Important idea 2
- Important idea 3

### Practical Insight
Explain how this affects investors or portfolios.

IMPORTANT RULES:
- Minimum 4 to 5 sentences.
- Avoid one-line answers.
- Stay strictly within finance topics.
- Do NOT include the prompt or question in your response.
- Do NOT repeat questions or headers in your answer.

Question:
%s
`, question)
}

// Ensure Service implements AssistantService
var _ interfaces.AssistantService = (*Service)(nil)
