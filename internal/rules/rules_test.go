package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupervisorMisspellingCorrected(t *testing.T) {
	out := Apply(Input{OrderID: "500123", Supervisor: "OSÉAS SANTOS OL"})
	assert.Equal(t, "OSEAS SANTOS OLIVEIRA", out.Supervisor)
}

func TestCounterSaleUnified(t *testing.T) {
	for _, in := range []string{"BALCÃO", "BALCAO", "balcão"} {
		out := Apply(Input{OrderID: "500123", Supervisor: in})
		assert.Equal(t, CounterSupervisor, out.Supervisor, "input %q", in)
	}
}

func TestKeyAccountCounterSaleOverride(t *testing.T) {
	out := Apply(Input{
		OrderID:         "500123",
		Vendor:          "VD JOAO",
		Supervisor:      "BALCÃO",
		RoutingCode:     "7",
		ClientLegalName: "LOJAS AMERICANAS SA",
	})
	assert.Equal(t, "VD AMERICANAS", out.Vendor)
	assert.Equal(t, "1001", out.RoutingCode)
	assert.Equal(t, CounterSupervisor, out.Supervisor)
}

func TestKeyAccountRequiresCounterSupervisor(t *testing.T) {
	out := Apply(Input{
		OrderID:         "500123",
		Vendor:          "VD JOAO",
		Supervisor:      "SUP NORMAL",
		RoutingCode:     "7",
		ClientLegalName: "LOJAS AMERICANAS SA",
	})
	assert.Equal(t, "VD JOAO", out.Vendor)
	assert.Equal(t, "7", out.RoutingCode)
}

// The order-numbering rule must win over the supervisor correction and
// the key-account override.
func TestDirectSaleOrderPrefixOverridesEverything(t *testing.T) {
	out := Apply(Input{
		OrderID:         "1205551",
		Vendor:          "VD JOAO",
		Supervisor:      "OSÉAS SANTOS OL",
		RoutingCode:     "7",
		ClientLegalName: "LOJAS AMERICANAS SA",
	})
	assert.Equal(t, "VD HIAGO", out.Vendor)
	assert.Equal(t, "HIAGO ASSUNCAO", out.Supervisor)
	assert.Equal(t, "1002", out.RoutingCode)
}

func TestOrderDatePulledForwardToExitMonth(t *testing.T) {
	out := Apply(Input{
		OrderID:   "500123",
		OrderDate: "15/01/2024",
		ExitDate:  "01/03/2024",
	})
	assert.Equal(t, "01/03/2024", out.OrderDate)
}

func TestOrderDateUnchangedWithinSameMonth(t *testing.T) {
	out := Apply(Input{
		OrderID:   "500123",
		OrderDate: "15/03/2024",
		ExitDate:  "01/03/2024",
	})
	assert.Equal(t, "15/03/2024", out.OrderDate)
}

func TestOrderDateUnchangedWhenExitUnparseable(t *testing.T) {
	out := Apply(Input{
		OrderID:   "500123",
		OrderDate: "15/01/2024",
		ExitDate:  "pending",
	})
	assert.Equal(t, "15/01/2024", out.OrderDate)
}
