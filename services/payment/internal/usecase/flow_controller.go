package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/pix"
	"github.com/elnathantransportes-ai/troca/pkg/store"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/entity"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/repo/persistent"
)

// Fees holds the checkout price of each purpose, in BRL.
type Fees struct {
	NegotiationFee float64
	Highlight24h   float64
	Highlight7d    float64
	PremiumSub     float64
}

type PaymentUseCase interface {
	StartPayment(ctx context.Context, userID string, purpose entity.Purpose, targetID string) (entity.FlowSnapshot, error)
	FlowStatus(userID string) entity.FlowSnapshot
	Recheck(ctx context.Context, userID string) (entity.FlowSnapshot, error)
	Cancel(ctx context.Context, userID string) entity.FlowSnapshot
	History(userID string) ([]*entity.Payment, error)
	Subscribe(l store.Listener) func()
	Shutdown()
}

type flow struct {
	snapshot entity.FlowSnapshot
	targetID string
	stopPoll context.CancelFunc
}

// paymentUseCase runs one checkout flow per user. The flow is an in-memory
// state machine (NONE, PROCESSING, QRCODE, SUCCESS); the payments table is the
// durable record the other services consume from.
type paymentUseCase struct {
	paymentRepo  persistent.PaymentRepository
	payerReader  persistent.PayerReader
	effects      persistent.EffectApplier
	gateway      pix.Gateway
	fees         Fees
	store        *store.Store
	logger       *logger.Logger
	pollInterval time.Duration

	mu    sync.Mutex
	flows map[string]*flow
}

func NewPaymentUseCase(
	paymentRepo persistent.PaymentRepository,
	payerReader persistent.PayerReader,
	effects persistent.EffectApplier,
	gateway pix.Gateway,
	fees Fees,
	st *store.Store,
	logger *logger.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		paymentRepo:  paymentRepo,
		payerReader:  payerReader,
		effects:      effects,
		gateway:      gateway,
		fees:         fees,
		store:        st,
		logger:       logger,
		pollInterval: 5 * time.Second,
		flows:        make(map[string]*flow),
	}
}

func (uc *paymentUseCase) Subscribe(l store.Listener) func() {
	return uc.store.Subscribe(l)
}

func (uc *paymentUseCase) amountFor(purpose entity.Purpose) (float64, string, error) {
	switch purpose {
	case entity.PurposeNegotiationFee:
		return uc.fees.NegotiationFee, "Troca - taxa de negociacao", nil
	case entity.PurposeHighlight24h:
		return uc.fees.Highlight24h, "Troca - destaque 24h", nil
	case entity.PurposeHighlight7d:
		return uc.fees.Highlight7d, "Troca - destaque 7 dias", nil
	case entity.PurposePremiumSub:
		return uc.fees.PremiumSub, "Troca - assinatura premium", nil
	default:
		return 0, "", fmt.Errorf("unknown payment purpose")
	}
}

func (uc *paymentUseCase) StartPayment(ctx context.Context, userID string, purpose entity.Purpose, targetID string) (entity.FlowSnapshot, error) {
	amount, description, err := uc.amountFor(purpose)
	if err != nil {
		return entity.FlowSnapshot{State: entity.FlowNone}, err
	}

	uc.mu.Lock()
	if f, ok := uc.flows[userID]; ok {
		if f.snapshot.State == entity.FlowProcessing || f.snapshot.State == entity.FlowQRCode {
			snap := f.snapshot
			uc.mu.Unlock()
			return snap, fmt.Errorf("a payment is already in progress")
		}
	}
	f := &flow{
		snapshot: entity.FlowSnapshot{
			State:     entity.FlowProcessing,
			Purpose:   purpose,
			Amount:    amount,
			StartedAt: time.Now(),
		},
		targetID: targetID,
	}
	uc.flows[userID] = f
	uc.mu.Unlock()
	uc.store.Notify()

	payer, err := uc.payerReader.GetPayer(userID)
	if err != nil {
		uc.logger.Error("payment: payer lookup for %s: %v", userID, err)
		return uc.abort(userID), fmt.Errorf("user not found")
	}

	intent, err := uc.gateway.CreatePayment(ctx, amount, description, pix.Payer{
		Email: payer.Email,
		Name:  payer.Name,
		CPF:   payer.CPF,
	})
	if err != nil {
		uc.logger.Error("payment: gateway create for %s: %v", userID, err)
		return uc.abort(userID), fmt.Errorf("failed to start payment")
	}

	err = uc.paymentRepo.Create(&entity.Payment{
		GatewayID: intent.ID,
		UserID:    userID,
		Purpose:   purpose,
		Amount:    amount,
		Status:    entity.StatusPending,
		TargetID:  targetID,
	})
	if err != nil {
		uc.logger.Error("payment: persist intent %d: %v", intent.ID, err)
		return uc.abort(userID), fmt.Errorf("failed to start payment")
	}

	qrBase64 := intent.QRCodeBase64
	if qrBase64 == "" && intent.QRCode != "" {
		// Gateway sandbox sometimes omits the rendered image; render the
		// copy-paste payload locally so the client always gets a QR.
		png, qrErr := qrcode.Encode(intent.QRCode, qrcode.Medium, 256)
		if qrErr != nil {
			uc.logger.Warn("payment: local qr render for %d: %v", intent.ID, qrErr)
		} else {
			qrBase64 = base64.StdEncoding.EncodeToString(png)
		}
	}

	pollCtx, stopPoll := context.WithCancel(context.Background())

	uc.mu.Lock()
	f.snapshot.State = entity.FlowQRCode
	f.snapshot.GatewayID = intent.ID
	f.snapshot.QRCode = intent.QRCode
	f.snapshot.QRCodeBase64 = qrBase64
	f.stopPoll = stopPoll
	snap := f.snapshot
	uc.mu.Unlock()
	uc.store.Notify()

	go uc.poll(pollCtx, userID, intent.ID)

	return snap, nil
}

// abort tears the flow back to NONE after a failed start.
func (uc *paymentUseCase) abort(userID string) entity.FlowSnapshot {
	uc.mu.Lock()
	delete(uc.flows, userID)
	uc.mu.Unlock()
	uc.store.Notify()
	return entity.FlowSnapshot{State: entity.FlowNone}
}

// poll watches the gateway until the payment resolves or the flow is torn
// down. Only one poller runs per flow; Cancel and Shutdown stop it through
// the flow's context.
func (uc *paymentUseCase) poll(ctx context.Context, userID string, gatewayID int64) {
	ticker := time.NewTicker(uc.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := uc.gateway.GetStatus(ctx, gatewayID)
			if err != nil {
				uc.logger.Warn("payment: status poll %d: %v", gatewayID, err)
				continue
			}
			if uc.resolve(userID, gatewayID, status) {
				return
			}
		}
	}
}

// resolve applies a terminal gateway status to the flow. Returns true when
// the flow reached a terminal state and polling should stop.
func (uc *paymentUseCase) resolve(userID string, gatewayID int64, status string) bool {
	switch status {
	case pix.StatusApproved:
		uc.approve(userID, gatewayID)
		return true
	case pix.StatusRejected:
		if err := uc.paymentRepo.UpdateStatus(gatewayID, entity.StatusRejected); err != nil {
			uc.logger.Error("payment: mark rejected %d: %v", gatewayID, err)
		}
		uc.mu.Lock()
		if f, ok := uc.flows[userID]; ok && f.snapshot.GatewayID == gatewayID {
			if f.stopPoll != nil {
				f.stopPoll()
			}
			delete(uc.flows, userID)
		}
		uc.mu.Unlock()
		uc.store.Notify()
		return true
	default:
		return false
	}
}

func (uc *paymentUseCase) approve(userID string, gatewayID int64) {
	uc.mu.Lock()
	f, ok := uc.flows[userID]
	if !ok || f.snapshot.GatewayID != gatewayID || f.snapshot.State == entity.FlowSuccess {
		uc.mu.Unlock()
		return
	}
	purpose := f.snapshot.Purpose
	targetID := f.targetID
	f.snapshot.State = entity.FlowSuccess
	if f.stopPoll != nil {
		f.stopPoll()
	}
	uc.mu.Unlock()

	if err := uc.paymentRepo.UpdateStatus(gatewayID, entity.StatusApproved); err != nil {
		uc.logger.Error("payment: mark approved %d: %v", gatewayID, err)
	}

	switch purpose {
	case entity.PurposeHighlight24h:
		uc.applyHighlight(gatewayID, targetID, 24*time.Hour)
	case entity.PurposeHighlight7d:
		uc.applyHighlight(gatewayID, targetID, 7*24*time.Hour)
	}
	// NEGOTIATION_FEE and PREMIUM_SUB stay unconsumed here; the negotiation
	// and auth services consume the approved row when the gated action runs.

	uc.store.Notify()
}

func (uc *paymentUseCase) applyHighlight(gatewayID int64, listingID string, duration time.Duration) {
	if listingID == "" {
		uc.logger.Warn("payment: highlight %d approved without a listing", gatewayID)
		return
	}
	if err := uc.effects.ApplyHighlight(listingID, time.Now().Add(duration)); err != nil {
		uc.logger.Error("payment: apply highlight on %s: %v", listingID, err)
		return
	}
	if err := uc.paymentRepo.MarkConsumed(gatewayID); err != nil {
		uc.logger.Error("payment: consume highlight %d: %v", gatewayID, err)
	}
}

func (uc *paymentUseCase) FlowStatus(userID string) entity.FlowSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if f, ok := uc.flows[userID]; ok {
		return f.snapshot
	}
	return entity.FlowSnapshot{State: entity.FlowNone}
}

// Recheck asks the gateway once, outside the poll cadence. It never creates
// a new intent; a still-pending payment stays in QRCODE.
func (uc *paymentUseCase) Recheck(ctx context.Context, userID string) (entity.FlowSnapshot, error) {
	uc.mu.Lock()
	f, ok := uc.flows[userID]
	if !ok || f.snapshot.State != entity.FlowQRCode {
		var snap entity.FlowSnapshot
		if ok {
			snap = f.snapshot
		} else {
			snap = entity.FlowSnapshot{State: entity.FlowNone}
		}
		uc.mu.Unlock()
		return snap, fmt.Errorf("no payment awaiting confirmation")
	}
	gatewayID := f.snapshot.GatewayID
	uc.mu.Unlock()

	status, err := uc.gateway.GetStatus(ctx, gatewayID)
	if err != nil {
		uc.logger.Warn("payment: manual recheck %d: %v", gatewayID, err)
		return uc.FlowStatus(userID), fmt.Errorf("failed to check payment status")
	}
	if uc.resolve(userID, gatewayID, status) {
		return uc.FlowStatus(userID), nil
	}
	return uc.FlowStatus(userID), fmt.Errorf("payment not yet confirmed")
}

// Cancel tears the flow down and releases the user to start over. A payment
// that already reached SUCCESS cannot be cancelled.
func (uc *paymentUseCase) Cancel(ctx context.Context, userID string) entity.FlowSnapshot {
	uc.mu.Lock()
	f, ok := uc.flows[userID]
	if !ok || f.snapshot.State == entity.FlowSuccess {
		uc.mu.Unlock()
		return uc.FlowStatus(userID)
	}
	gatewayID := f.snapshot.GatewayID
	if f.stopPoll != nil {
		f.stopPoll()
	}
	delete(uc.flows, userID)
	uc.mu.Unlock()

	if gatewayID != 0 {
		if err := uc.paymentRepo.UpdateStatus(gatewayID, entity.StatusCancelled); err != nil {
			uc.logger.Error("payment: mark cancelled %d: %v", gatewayID, err)
		}
	}

	uc.store.Notify()
	return entity.FlowSnapshot{State: entity.FlowNone}
}

func (uc *paymentUseCase) History(userID string) ([]*entity.Payment, error) {
	payments, err := uc.paymentRepo.GetByUser(userID)
	if err != nil {
		uc.logger.Error("payment: history for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load payment history")
	}
	return payments, nil
}

// Shutdown stops every active poller. Flows in QRCODE stay pending in the
// payments table and can be resumed by a fresh StartPayment after restart.
func (uc *paymentUseCase) Shutdown() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, f := range uc.flows {
		if f.stopPoll != nil {
			f.stopPoll()
		}
	}
}
