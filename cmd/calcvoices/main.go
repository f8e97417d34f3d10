package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"calcvoices/engine/actors"
	"calcvoices/engine/conductor"
	"calcvoices/engine/library"
	"calcvoices/engine/metrics"
	"calcvoices/messaging/horizon"
	"calcvoices/messaging/ledger"
	"calcvoices/messaging/report"
	"calcvoices/messaging/snapshot"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	pflag.String("rootDir", "", "directory holding config.yaml and the output directory")
	pflag.String("source", actors.SourceHorizon, "where accounts come from: horizon or snapshot")
	pflag.String("snapshotFile", "", "yaml snapshot to read when source is snapshot")
	pflag.String("horizonURL", "", "horizon server to query")
	pflag.String("metricsFile", "", "write prometheus textfile metrics here")
	pflag.Bool("debug", false, "log every resolver step")
	pflag.Bool("interactive", false, "browse the result from the keyboard after the run")
	pflag.Parse()

	// Various aspects of this application require settings. To keep things clean and tidy we
	// put these settings in a Viper configuration. Flags win over config.yaml.
	conf := viper.New()
	log := library.NewCLILogger(false)
	if err := conf.BindPFlags(pflag.CommandLine); err != nil {
		library.LogCLI(log, err, library.Fatal)
	}
	if err := actors.InitConfig(conf); err != nil {
		library.LogCLI(log, err, library.Fatal)
	}
	config, err := actors.NewRunConfig(conf)
	if err != nil {
		library.LogCLI(log, err, library.Fatal)
	}

	log = library.NewCLILogger(config.Debug)
	collaborators, err := collaboratorsFor(config, log)
	if err != nil {
		library.LogCLI(log, err, library.Fatal)
	}

	res, err := conductor.Run(context.Background(), collaborators, conductor.Options{
		PrefetchWorkers: config.PrefetchWorkers,
		Log:             log,
	})
	if err != nil {
		library.LogCLI(log, err, library.Fatal)
	}
	log.Info("run %s finished: %d accounts, %d council members", res.RunID, res.Registry.Len(), len(res.Members))

	p := report.New(os.Stdout)
	res.Print(p, config.Token)

	envelope, err := ledger.Envelope(res.Plan, res.Observed, ledger.Options{BaseFee: config.BaseFee, Memo: config.Memo})
	switch {
	case errors.Is(err, ledger.ErrNothingToChange):
		p.Envelope("")
	case err != nil:
		library.LogCLI(log, err, library.Fatal)
	default:
		p.Envelope(envelope)
		path, err := actors.Write(config, fmt.Sprintf("%s.xdr", res.RunID), []byte(envelope))
		if err != nil {
			library.LogCLI(log, err, library.Serious)
		} else {
			log.Info("transaction written to %s", path)
		}
	}
	if err = p.Err(); err != nil {
		library.LogCLI(log, err, library.Serious)
	}

	if len(config.MetricsFile) > 0 {
		if err = metrics.WriteTextfile(config.MetricsFile, res); err != nil {
			library.LogCLI(log, err, library.Serious)
		}
	}

	if config.Interactive {
		cliListener(log, config, res)
	}
}

// collaboratorsFor wires the account source selected in config. Both sources validate
// delegate ids themselves.
func collaboratorsFor(config actors.RunConfig, log library.Logger) (conductor.Collaborators, error) {
	switch config.Source {
	case actors.SourceSnapshot:
		s, err := snapshot.Open(config.SnapshotFile)
		if err != nil {
			return conductor.Collaborators{}, err
		}
		return conductor.Collaborators{Source: s, Loader: s, Observer: s}, nil
	default:
		client := horizon.NewClient(horizon.NewAPI(config.HorizonURL), config.Token, config.MainAccount, log)
		return conductor.Collaborators{
			Source:   client,
			Loader:   horizon.NewLoader(client),
			Observer: client,
		}, nil
	}
}
