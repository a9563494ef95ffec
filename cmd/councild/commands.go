package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// InitCmd loads the genesis file given as the only argument into a new
// ledger store and commits it.
func InitCmd(logger log.Logger, conf *viper.Viper, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: init <genesis.json>")
	}
	gen, err := app.LoadGenesis(args[0])
	if err != nil {
		return err
	}
	n, err := openNode(conf)
	if err != nil {
		return err
	}
	defer n.Close()

	if err := app.InitState(n.store, gen, n.init); err != nil {
		return err
	}
	commit, err := n.store.Commit()
	if err != nil {
		return err
	}
	logger.Info("ledger initialized", "chain_id", gen.ChainID, "version", commit.Version)
	return printJSON(out, commitResult{
		ChainID: gen.ChainID,
		Version: commit.Version,
		Hash:    hex.EncodeToString(commit.Hash),
	})
}

// BatchEntry is a single message of an exec batch.
type BatchEntry struct {
	// Height is the chain height the message is processed at. The
	// configured height is used when zero. Heights must not decrease
	// within a batch. A later batch may go back to a lower height, in
	// which case streams release nothing until the height passes their
	// last pull.
	Height  int64              `json:"height,omitempty"`
	Signers []ledger.Condition `json:"signers"`
	Path    string             `json:"path"`
	Msg     json.RawMessage    `json:"msg"`
}

// EntryResult reports the outcome of a single batch entry.
type EntryResult struct {
	Path   string         `json:"path"`
	Code   uint32         `json:"code"`
	Error  string         `json:"error,omitempty"`
	Data   string         `json:"data,omitempty"`
	Log    string         `json:"log,omitempty"`
	Events []ledger.Event `json:"events,omitempty"`
}

type commitResult struct {
	ChainID string        `json:"chain_id"`
	Version int64         `json:"version"`
	Hash    string        `json:"hash"`
	Results []EntryResult `json:"results,omitempty"`
}

// ExecCmd delivers all messages of the batch file given as the only
// argument. Each message is applied atomically and a failing message does
// not prevent the following ones from being processed. The resulting state
// is committed once the whole batch was processed.
func ExecCmd(logger log.Logger, conf *viper.Viper, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.Wrap(errors.ErrInvalidInput, "usage: exec <batch.json>")
	}
	raw, err := ioutil.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot read batch: %s", err)
	}
	var batch []BatchEntry
	if err := json.Unmarshal(raw, &batch); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot decode batch: %s", err)
	}

	n, err := openNode(conf)
	if err != nil {
		return err
	}
	defer n.Close()
	chainID, err := n.chainID()
	if err != nil {
		return err
	}

	exec := app.NewExecutor(n.store, n.router, app.NewLoggingSink(logger))
	base := ledger.WithLogger(context.Background(), logger)
	results := make([]EntryResult, 0, len(batch))
	var last int64
	for i, entry := range batch {
		height := entry.Height
		if height == 0 {
			height = conf.GetInt64(confHeight)
		}
		res := EntryResult{Path: entry.Path}
		var dres *ledger.DeliverResult
		if height < last {
			err = errors.Wrapf(errors.ErrInvalidInput, "height %d below previous entry height %d", height, last)
		} else {
			last = height
			dres, err = deliver(ledger.WithHeight(base, height), exec, n.router, entry)
		}
		if err != nil {
			logger.Info("batch entry failed", "index", i, "err", err)
			res.Code = errors.Code(err)
			res.Error = err.Error()
		} else {
			res.Data = hex.EncodeToString(dres.Data)
			res.Log = dres.Log
			res.Events = dres.Events
		}
		results = append(results, res)
	}

	commit, err := n.store.Commit()
	if err != nil {
		return err
	}
	return printJSON(out, commitResult{
		ChainID: chainID,
		Version: commit.Version,
		Hash:    hex.EncodeToString(commit.Hash),
		Results: results,
	})
}

func deliver(ctx ledger.Context, exec *app.Executor, r *app.Router, entry BatchEntry) (*ledger.DeliverResult, error) {
	msg, err := r.NewMsg(entry.Path)
	if err != nil {
		return nil, err
	}
	if len(entry.Msg) != 0 {
		if err := json.Unmarshal(entry.Msg, msg); err != nil {
			return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %q: %s", entry.Path, err)
		}
	}
	if err := exec.Check(ctx, entry.Signers, msg); err != nil {
		return nil, err
	}
	return exec.Deliver(ctx, entry.Signers, msg)
}

// QueryCmd prints a part of the ledger state as JSON.
//
//	query state
//	query config
//	query seats
//	query balance <seat id>
//	query wallet <address>
//	query stream <target address> <stream id>
//	query role <name>
func QueryCmd(logger log.Logger, conf *viper.Viper, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "missing query")
	}
	n, err := openNode(conf)
	if err != nil {
		return err
	}
	defer n.Close()
	if _, err := n.chainID(); err != nil {
		return err
	}
	db := n.store.Adapter()

	res, err := query(n, db, args[0], args[1:])
	if err != nil {
		return err
	}
	return printJSON(out, res)
}

func query(n *node, db ledger.ReadOnlyKVStore, what string, args []string) (interface{}, error) {
	need := func(count int) error {
		if len(args) != count {
			return errors.Wrapf(errors.ErrInvalidInput, "%s expects %d arguments", what, count)
		}
		return nil
	}

	switch what {
	case "state":
		return n.ledger.State(db)
	case "config":
		return n.ledger.Configuration(db)
	case "seats":
		return n.ledger.Seats(db)
	case "balance":
		if err := need(1); err != nil {
			return nil, err
		}
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		balance, err := n.ledger.Balance(db, id)
		if err != nil {
			return nil, err
		}
		owner, err := n.seats.OwnerOf(db, id)
		if err != nil && !errors.ErrNotFound.Is(err) {
			return nil, err
		}
		return struct {
			SeatID  uint64         `json:"seat_id"`
			Owner   ledger.Address `json:"owner,omitempty"`
			Balance uint64         `json:"balance"`
		}{id, owner, balance}, nil
	case "wallet":
		if err := need(1); err != nil {
			return nil, err
		}
		addr, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		return n.assets.Wallet(db, addr)
	case "stream":
		if err := need(2); err != nil {
			return nil, err
		}
		target, err := ledger.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		id, err := parseID(args[1])
		if err != nil {
			return nil, err
		}
		return n.streams.Get(db, target, id)
	case "role":
		if err := need(1); err != nil {
			return nil, err
		}
		return n.roles.Members(db, args[0])
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query %q", what)
	}
}

func parseID(s string) (uint64, error) {
	id, err := cast.ToUint64E(s)
	if err != nil || id == 0 {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "invalid id %q", s)
	}
	return id, nil
}

func printJSON(out io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}
