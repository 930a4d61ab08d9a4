// wbsim runs random READ/WRITE traffic through a Wishbone bus master wired
// to a memory-backed slave and reports whether every read returned the data
// the software model predicts.
package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/buslab/wishbone/mem"
	"github.com/buslab/wishbone/sim"
	"github.com/buslab/wishbone/sim/directconnection"
	"github.com/buslab/wishbone/tracing"
	"github.com/buslab/wishbone/wishbone"
	"github.com/buslab/wishbone/wishbone/master"
	"github.com/buslab/wishbone/wishbone/memslave"
)

var (
	flagAddrWidth  uint
	flagDataWidth  uint
	flagAckLatency int
	flagNumTrans   int
	flagSeed       int64
	flagTraceCSV   string
	flagTraceSQL   string
	flagTraceBus   bool
)

var rootCmd = &cobra.Command{
	Use:   "wbsim",
	Short: "wbsim runs random traffic through a Wishbone master and slave.",
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

func init() {
	rootCmd.Flags().UintVar(&flagAddrWidth, "addr-width", 32,
		"address bus width in bits")
	rootCmd.Flags().UintVar(&flagDataWidth, "data-width", 32,
		"data bus width in bits")
	rootCmd.Flags().IntVar(&flagAckLatency, "ack-latency", 1,
		"extra cycles the slave waits before acknowledging")
	rootCmd.Flags().IntVar(&flagNumTrans, "num-transactions", 1000,
		"number of transactions to run")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 1,
		"random seed for the traffic pattern")
	rootCmd.Flags().StringVar(&flagTraceCSV, "trace-csv", "",
		"write a task trace to the given CSV file")
	rootCmd.Flags().StringVar(&flagTraceSQL, "trace-sqlite", "",
		"write a task trace to the given SQLite database")
	rootCmd.Flags().BoolVar(&flagTraceBus, "trace-bus-signals", false,
		"also record bus signal transitions in the trace")
}

func run() {
	spec := wishbone.Spec{
		AddrWidth: flagAddrWidth,
		DataWidth: flagDataWidth,
	}
	spec.MustValidate()

	engine := sim.NewSerialEngine()
	freq := 1 * sim.GHz

	bus := wishbone.NewBus("Bus")

	m := master.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithSpec(spec).
		WithBus(bus).
		Build("Master")

	memslave.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithSpec(spec).
		WithBus(bus).
		WithAckLatency(flagAckLatency).
		WithNewStorage(1 * mem.MB).
		Build("MemSlave")

	agent := newTrafficAgent("Agent", engine, freq, spec,
		m.TopPort().AsRemote(), flagNumTrans, flagSeed)

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		Build("Conn")
	conn.PlugIn(m.TopPort())
	conn.PlugIn(agent.port)

	setUpTracing(m, bus, engine)

	agent.TickLater()

	err := engine.Run()
	if err != nil {
		log.Panic(err)
	}

	log.Printf("ran %d transactions at %.10fs, %d read mismatches",
		agent.received, float64(engine.CurrentTime()), agent.mismatches)

	if agent.mismatches > 0 || agent.received != flagNumTrans {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func setUpTracing(m *master.Comp, bus *wishbone.Bus, engine sim.Engine) {
	addTracer := func(backend tracing.TraceWriter) {
		tracer := tracing.NewDBTracer(engine, backend)
		tracing.CollectTrace(m, tracer)

		if flagTraceBus {
			tracing.CollectBusSignals(bus, engine, tracer)
		}
	}

	if flagTraceCSV != "" {
		addTracer(tracing.NewCSVTraceWriter(flagTraceCSV))
	}

	if flagTraceSQL != "" {
		addTracer(tracing.NewSQLiteTraceWriter(flagTraceSQL))
	}
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
