package council

import (
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/counciltest"
	"github.com/iov-one/ledger/counciltest/assert"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/asset"
)

func TestHandlers(t *testing.T) {
	member := counciltest.NewCondition()
	other := counciltest.NewCondition()
	stranger := counciltest.NewCondition()
	target := counciltest.NewCondition().Address()

	// signer values other than these two are used as is
	const (
		governance = "governance"
		support    = "support"
	)

	cases := map[string]struct {
		signer  interface{}
		msg     ledger.Msg
		wantErr *errors.Error
		// the error is only found when the message is delivered
		deliverOnly bool
		wantEvent   string
		wantAttrs   map[string]string
	}{
		"governance issues a seat": {
			signer:    governance,
			msg:       &IssueSeatMsg{Recipient: stranger.Address()},
			wantEvent: "seat-created",
			wantAttrs: map[string]string{"seat_id": "3", "owner": stranger.Address().String()},
		},
		"issue without the governance role": {
			signer:  member,
			msg:     &IssueSeatMsg{Recipient: stranger.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"issue to an invalid address": {
			signer:  governance,
			msg:     &IssueSeatMsg{},
			wantErr: errors.ErrInvalidInput,
		},
		"governance retires a seat": {
			signer:    governance,
			msg:       &RetireSeatMsg{SeatID: 1, Recipient: stranger.Address()},
			wantEvent: "seat-retired",
			wantAttrs: map[string]string{"seat_id": "1", "amount": "150"},
		},
		"retire without the governance role": {
			signer:  support,
			msg:     &RetireSeatMsg{SeatID: 1, Recipient: stranger.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"owner claims": {
			signer:    member,
			msg:       &ClaimMsg{SeatID: 1, Amount: 150},
			wantEvent: "funds-claimed",
			wantAttrs: map[string]string{"claimant": member.Address().String(), "amount": "150"},
		},
		"claim above the balance": {
			signer:      member,
			msg:         &ClaimMsg{SeatID: 1, Amount: 151},
			wantErr:     errors.ErrInsufficientAmount,
			deliverOnly: true,
		},
		"claim by governance is not a claim by the owner": {
			signer:  governance,
			msg:     &ClaimMsg{SeatID: 1, Amount: 1},
			wantErr: ErrNotOwner,
		},
		"claim of nothing": {
			signer:  member,
			msg:     &ClaimMsg{SeatID: 1},
			wantErr: errors.ErrInvalidAmount,
		},
		"governance reassigns": {
			signer:    governance,
			msg:       &ReassignSeatMsg{SeatID: 1, From: member.Address(), To: stranger.Address(), Recipient: member.Address()},
			wantEvent: "seat-reassigned",
			wantAttrs: map[string]string{"to": stranger.Address().String(), "amount": "150"},
		},
		"reassign from a non owner": {
			signer:  governance,
			msg:     &ReassignSeatMsg{SeatID: 1, From: other.Address(), To: stranger.Address(), Recipient: member.Address()},
			wantErr: ErrNotOwner,
		},
		"reassign by the owner": {
			signer:  member,
			msg:     &ReassignSeatMsg{SeatID: 1, From: member.Address(), To: stranger.Address(), Recipient: member.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"anyone can checkpoint": {
			signer:    nil,
			msg:       &CheckpointMsg{},
			wantEvent: "checkpoint",
			wantAttrs: map[string]string{"share": "50", "remainder": "0", "holdings": "200"},
		},
		"governance updates the stream": {
			signer:    governance,
			msg:       &UpdateStreamMsg{Target: target, StreamID: 7},
			wantEvent: "stream-target-updated",
			wantAttrs: map[string]string{"stream_id": "7"},
		},
		"stream update without the governance role": {
			signer:  support,
			msg:     &UpdateStreamMsg{Target: target, StreamID: 7},
			wantErr: errors.ErrUnauthorized,
		},
		"governance updates the minimum council": {
			signer:    governance,
			msg:       &UpdateMinCouncilMsg{Size: 2},
			wantEvent: "min-council-updated",
		},
		"minimum council above the seat count": {
			signer:      governance,
			msg:         &UpdateMinCouncilMsg{Size: 3},
			wantErr:     ErrCouncilSize,
			deliverOnly: true,
		},
		"governance pauses": {
			signer:    governance,
			msg:       &PauseMsg{Paused: true},
			wantEvent: "paused",
			wantAttrs: map[string]string{"paused": "true"},
		},
		"support rescues": {
			signer:    support,
			msg:       &RescueMsg{Amount: coin.NewCoinp(5, "ETH"), Destination: stranger.Address()},
			wantEvent: "rescued",
		},
		"rescue without the support role": {
			signer:  governance,
			msg:     &RescueMsg{Amount: coin.NewCoinp(5, "ETH"), Destination: stranger.Address()},
			wantErr: errors.ErrUnauthorized,
		},
		"revenue currency cannot be rescued": {
			signer:      support,
			msg:         &RescueMsg{Amount: coin.NewCoinp(5, ticker), Destination: stranger.Address()},
			wantErr:     errors.ErrInvalidInput,
			deliverOnly: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 1)
			f.issue(t, member.Address())
			f.issue(t, other.Address())
			assert.Nil(t, f.assets.CoinMint(f.db, Account, coin.NewCoin(5, "ETH")))

			var signers []ledger.Condition
			switch s := tc.signer.(type) {
			case string:
				if s == governance {
					signers = append(signers, f.governance)
				} else {
					signers = append(signers, f.support)
				}
			case ledger.Condition:
				signers = append(signers, s)
			}

			sink := &app.RecordingSink{}
			exec := f.executor(sink)
			before := f.state(t)
			custody := f.wallet(t, Account)

			wantCheckErr := tc.wantErr
			if tc.deliverOnly {
				wantCheckErr = nil
			}
			assert.IsErr(t, wantCheckErr, exec.Check(f.ctx, signers, tc.msg))
			res, err := exec.Deliver(f.ctx, signers, tc.msg)
			assert.IsErr(t, tc.wantErr, err)

			if tc.wantErr != nil {
				// nothing, including the stream pull, is persisted
				assert.Equal(t, before, f.state(t))
				assert.Equal(t, custody, f.wallet(t, Account))
				assert.Equal(t, 0, len(sink.Events()))
				return
			}

			assert.Equal(t, 1, len(res.Events))
			ev := res.Events[0]
			assert.Equal(t, tc.wantEvent, ev.Type)
			for k, want := range tc.wantAttrs {
				got, ok := ev.Attr(k)
				if !ok {
					t.Fatalf("missing %q attribute", k)
				}
				assert.Equal(t, want, got)
			}
			assert.Equal(t, 1, len(sink.ByType(tc.wantEvent)))
			f.assertBooks(t)
		})
	}
}

func TestIssueResultData(t *testing.T) {
	f := newFixture(t, 1)
	res, err := f.executor(nil).Deliver(f.ctx, []ledger.Condition{f.governance},
		&IssueSeatMsg{Recipient: counciltest.NewCondition().Address()})
	assert.Nil(t, err)
	assert.Equal(t, counciltest.SequenceID(1), res.Data)
}

func TestCheckpointWithoutArrivals(t *testing.T) {
	f := newFixture(t, 1)
	f.issue(t, counciltest.NewCondition().Address())
	f.stream.Amount = 0

	res, err := f.executor(nil).Deliver(f.ctx, nil, &CheckpointMsg{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Events))
}

// failingAssets reads real wallets but refuses to move coins.
type failingAssets struct {
	asset.BaseController
}

func (failingAssets) MoveCoins(ledger.KVStore, ledger.Address, ledger.Address, string, uint64) error {
	return errors.Wrap(errors.ErrDatabase, "transfer refused")
}

func TestFailedPayoutLeavesBooksUntouched(t *testing.T) {
	member := counciltest.NewCondition()
	other := counciltest.NewCondition()
	newcomer := counciltest.NewCondition().Address()
	recipient := counciltest.NewCondition().Address()

	cases := map[string]struct {
		signer func(f *fixture) ledger.Condition
		msg    func(first, second uint64) ledger.Msg
	}{
		"claim": {
			signer: func(*fixture) ledger.Condition { return member },
			msg: func(first, _ uint64) ledger.Msg {
				return &ClaimMsg{SeatID: first, Amount: 10}
			},
		},
		"retire": {
			signer: func(f *fixture) ledger.Condition { return f.governance },
			msg: func(_, second uint64) ledger.Msg {
				return &RetireSeatMsg{SeatID: second, Recipient: recipient}
			},
		},
		"reassign": {
			signer: func(f *fixture) ledger.Condition { return f.governance },
			msg: func(first, _ uint64) ledger.Msg {
				return &ReassignSeatMsg{SeatID: first, From: member.Address(), To: newcomer, Recipient: recipient}
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 1)
			first := f.issue(t, member.Address())
			second := f.issue(t, other.Address())
			_, err := f.ledger.Checkpoint(f.ctx, f.db)
			assert.Nil(t, err)
			firstBalance, secondBalance := f.balance(t, first), f.balance(t, second)
			if firstBalance == 0 || secondBalance == 0 {
				t.Fatal("want both seats funded")
			}

			f.ledger = NewLedger(f.seats, failingAssets{f.assets}, f.stream)
			sink := &app.RecordingSink{}
			exec := f.executor(sink)

			before := f.state(t)
			custody := f.wallet(t, Account)

			_, err = exec.Deliver(f.ctx, []ledger.Condition{tc.signer(f)}, tc.msg(first, second))
			assert.IsErr(t, ErrExternal, err)

			assert.Equal(t, before, f.state(t))
			assert.Equal(t, firstBalance, f.balance(t, first))
			assert.Equal(t, secondBalance, f.balance(t, second))
			assert.Equal(t, custody, f.wallet(t, Account))
			assert.Equal(t, uint64(0), f.wallet(t, member.Address()))
			assert.Equal(t, uint64(0), f.wallet(t, recipient))
			assert.Equal(t, 0, len(sink.Events()))

			owner, err := f.seats.OwnerOf(f.db, first)
			assert.Nil(t, err)
			assert.Equal(t, member.Address(), owner)
			f.assertBooks(t)
		})
	}
}
