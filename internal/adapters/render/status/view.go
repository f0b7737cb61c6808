package status

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bnema/agentctl/internal/application"
	"github.com/bnema/agentctl/internal/domain"
)

type RenderOptions struct {
	Now time.Time
	// VerdictsOnly drops the balance and program sections.
	VerdictsOnly bool
}

func renderView(overview application.Overview, opts RenderOptions, s styles) string {
	now := opts.Now
	if now.IsZero() {
		now = overview.Now
	}

	lines := []string{
		s.title.Render("Agent Status"),
		s.header.Render(storesLine(overview.Stores)),
	}

	if !overview.HasInstance {
		lines = append(lines, s.empty.Render("No agent selected. Run `agentctl select` first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(renderAgent(overview, s)))
	if !opts.VerdictsOnly {
		lines = append(lines, s.section.Render(renderBalances(overview, s)))
		lines = append(lines, s.section.Render(renderPrograms(overview, s)))
	}
	lines = append(lines, s.section.Render(renderVerdicts(overview.Verdicts, now, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func storesLine(states []application.StoreState) string {
	parts := make([]string, 0, len(states))
	for _, state := range states {
		parts = append(parts, fmt.Sprintf("%s: %s", state.Kind, storeLabel(state)))
	}
	return strings.Join(parts, "  ")
}

func storeLabel(state application.StoreState) string {
	switch {
	case state.Paused:
		return "paused"
	case state.Err != nil && state.Loaded:
		return "stale"
	case state.Err != nil:
		return "error"
	case !state.Loaded:
		return "loading"
	default:
		return "ok"
	}
}

func renderAgent(overview application.Overview, s styles) string {
	instance := overview.Instance
	parts := []string{
		s.agent.Render(fmt.Sprintf("%s on %s", instance.AgentType, instance.HomeNetwork)),
		s.detail.Render(fmt.Sprintf("staking program: %s", instance.StakingProgram)),
		s.detail.Render(fmt.Sprintf("service: %s", serviceLabel(instance))),
		statusLine(overview, s),
	}
	if overview.Busy {
		parts = append(parts, s.warning.Render("operation in progress"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func serviceLabel(instance domain.AgentInstance) string {
	if !instance.HasService() {
		return "not created"
	}
	return string(instance.ConfigID)
}

func statusLine(overview application.Overview, s styles) string {
	line := s.key.Render("status:") + " " + s.detail.Render(overview.Status.Label())
	if overview.Override != domain.DeploymentStatusUnknown {
		line += " " + s.meta.Render(fmt.Sprintf("(backend reports %s)", overview.Authoritative.Label()))
	}
	if overview.Status == domain.DeploymentStatusEvicted {
		line = s.warning.Render("status: evicted")
	}
	return line
}

type balanceRow struct {
	network   domain.Network
	token     domain.Token
	available decimal.Decimal
	staked    decimal.Decimal
}

func balanceRows(entries []domain.BalanceSnapshot) []balanceRow {
	var rows []balanceRow
	for _, entry := range entries {
		idx := slices.IndexFunc(rows, func(row balanceRow) bool {
			return row.network == entry.Network && row.token == entry.Token
		})
		if idx < 0 {
			rows = append(rows, balanceRow{network: entry.Network, token: entry.Token})
			idx = len(rows) - 1
		}
		if entry.Staked {
			rows[idx].staked = rows[idx].staked.Add(entry.Amount)
		} else {
			rows[idx].available = rows[idx].available.Add(entry.Amount)
		}
	}

	slices.SortFunc(rows, func(a, b balanceRow) int {
		if c := strings.Compare(string(a.network), string(b.network)); c != 0 {
			return c
		}
		return strings.Compare(string(a.token), string(b.token))
	})
	return rows
}

func renderBalances(overview application.Overview, s styles) string {
	parts := []string{s.title.Render("Balances")}

	rows := balanceRows(overview.Balances)
	if len(rows) == 0 {
		parts = append(parts, s.empty.Render("balances: loading"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, row := range rows {
		line := s.key.Render(fmt.Sprintf("%s %s:", row.network, row.token)) + " " +
			s.detail.Render(row.available.String())
		if !row.staked.IsZero() {
			line += " " + s.meta.Render(fmt.Sprintf("(+%s staked)", row.staked.String()))
		}
		parts = append(parts, line)
	}
	for _, low := range overview.LowBalances {
		parts = append(parts, s.warning.Render(fmt.Sprintf(
			"low %s on %s: %s below %s", low.Token, low.Network, low.Available.String(), low.Threshold.String())))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderPrograms(overview application.Overview, s styles) string {
	parts := []string{s.title.Render("Staking programs")}
	if len(overview.Programs) == 0 {
		parts = append(parts, s.empty.Render("staking programs: loading"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, program := range overview.Programs {
		name := string(program.ID)
		if program.ID == overview.Instance.StakingProgram {
			name += " *"
		}
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render(name),
			" ",
			renderSlotBar(program.UsedSlots, program.MaxSlots, 20, s),
			" ",
			s.meta.Render(fmt.Sprintf("%d/%d slots", program.UsedSlots, program.MaxSlots)),
		)
		if !program.RewardsAvailable {
			line += " " + s.warning.Render("[no rewards]")
		}
		parts = append(parts, line)

		for _, token := range program.RequiredTokens() {
			parts = append(parts, s.detail.Render(fmt.Sprintf("  requires %s %s", program.RequiredStake[token].String(), token)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSlotBar(used, total, width int, s styles) string {
	if width <= 0 || total <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(used) / float64(total)))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func renderVerdicts(verdicts []application.ActionVerdict, now time.Time, s styles) string {
	parts := []string{s.title.Render("Actions")}
	for _, v := range verdicts {
		parts = append(parts, verdictLine(v, now, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// verdictLine renders one action and, when denied, its explanation.
func verdictLine(v application.ActionVerdict, now time.Time, s styles) string {
	label := string(v.Action)
	if v.Action == domain.ActionMigrate && v.Target != "" {
		label = fmt.Sprintf("migrate to %s", v.Target)
	}

	if v.Verdict.Allowed() {
		return s.key.Render(label+":") + " " + s.allowed.Render("allowed")
	}
	return s.key.Render(label+":") + " " + s.denied.Render(v.Verdict.Explain(now))
}

// Explain renders a single verdict without styling, for error output.
func Explain(v application.ActionVerdict, now time.Time) string {
	return verdictLine(v, now, plainStyles())
}

func plainStyles() styles {
	plain := lipgloss.NewStyle()
	return styles{
		title: plain, header: plain, agent: plain, detail: plain, warning: plain,
		section: plain, empty: plain, key: plain, meta: plain, allowed: plain,
		denied: plain, barBracket: plain, barFill: plain, barEmpty: plain,
	}
}
