package minter

func init() {
	Register(TypePurge, func() Request { return &PurgeRequest{} })
}

const TypePurge = "purge"

// PurgeRequest sweeps the per-address mint counts after the sale has ended.
// Anyone may call it, and calling it again is a harmless no-op. Totals and
// the identifier allocator are untouched.
type PurgeRequest struct{}

func (r *PurgeRequest) Type() string    { return TypePurge }
func (r *PurgeRequest) Validate() error { return nil }

func (r *PurgeRequest) Apply(ctx *ApplyContext) error {
	if err := nonpayable(ctx); err != nil {
		return err
	}
	cfg, err := loadConfig(ctx.State)
	if err != nil {
		return err
	}
	if ctx.Now.Before(cfg.EndTime) {
		return ErrMintingHasNotYetEnded
	}
	if err := purgeMintCounts(ctx.State); err != nil {
		return err
	}
	ctx.Attr("action", "purge")
	ctx.Attr("sender", ctx.Sender)
	return nil
}
