package minter

import (
	"fmt"
	"strconv"
	"strings"
)

func init() {
	Register(TypeMigrate, func() Request { return &MigrateRequest{} })
}

const TypeMigrate = "migrate"

// MigrateRequest upgrades the stored contract identity to the running code
// version. Downgrades and cross-contract migrations are rejected.
type MigrateRequest struct{}

func (r *MigrateRequest) Type() string    { return TypeMigrate }
func (r *MigrateRequest) Validate() error { return nil }

func (r *MigrateRequest) Apply(ctx *ApplyContext) error {
	if err := nonpayable(ctx); err != nil {
		return err
	}
	current, err := loadVersion(ctx.State)
	if err != nil {
		return err
	}
	if current.Name != ContractName {
		return &MigrationError{Reason: fmt.Sprintf("cannot migrate %q to %q", current.Name, ContractName)}
	}
	cmp, err := compareVersions(ContractVersion, current.Version)
	if err != nil {
		return &MigrationError{Reason: err.Error()}
	}
	if cmp < 0 {
		return &MigrationError{Reason: fmt.Sprintf("cannot downgrade from %s to %s", current.Version, ContractVersion)}
	}
	if cmp > 0 {
		if err := saveVersion(ctx.State, &versionRecord{Name: ContractName, Version: ContractVersion}); err != nil {
			return err
		}
	}
	ctx.Attr("action", "migrate")
	ctx.Attr("from_version", current.Version)
	ctx.Attr("to_version", ContractVersion)
	return nil
}

// compareVersions orders two dotted numeric versions. Missing components
// count as zero, so "1.0" equals "1.0.0".
func compareVersions(a, b string) (int, error) {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv uint64
		var err error
		if i < len(as) {
			av, err = strconv.ParseUint(as[i], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("malformed version %q", a)
			}
		}
		if i < len(bs) {
			bv, err = strconv.ParseUint(bs[i], 10, 64)
			if err != nil {
				return 0, fmt.Errorf("malformed version %q", b)
			}
		}
		if av != bv {
			if av < bv {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}
