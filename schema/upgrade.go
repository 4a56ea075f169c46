package schema

import (
	"errors"
	"slices"

	"github.com/erraggy/reportio/ioerrors"
	"github.com/erraggy/reportio/jsonvalue"
)

// Upgrade moves doc forward to target from whichever version of target's
// lineage doc declares, applying the transform of every major version in
// between, one step at a time. A document already at target is returned
// unchanged.
//
// With copyDoc set, doc is deep-copied first and never modified; otherwise
// it is upgraded in place and may be left partially upgraded on error.
//
// A document declaring no version of the lineage yields a
// *ioerrors.VersionError wrapping target's validation failure. A failing
// transform yields a *ioerrors.TransformError naming its version.
func (e *Engine) Upgrade(target *Version, doc Document, copyDoc bool) (Document, error) {
	if copyDoc {
		doc, _ = jsonvalue.Clone(doc).(map[string]any)
	}

	var pending []*Version
	var from *Version
	for cur := range target.Lineage() {
		if cur.IsCompatibleExactly(doc) {
			from = cur
			break
		}
		pending = append(pending, cur)
	}
	if from == nil {
		return nil, target.unknownVersion(doc)
	}
	if len(pending) == 0 {
		return doc, nil
	}
	slices.Reverse(pending)

	log := e.logger()
	log.Debug("upgrading document", "from", from.String(), "to", target.String(), "steps", len(pending))
	for _, v := range pending {
		if v.transform != nil {
			out, err := v.transform(doc)
			if err != nil {
				return nil, v.transformError(err)
			}
			if out == nil {
				return nil, &ioerrors.TransformError{Version: v.String(), Message: "transform returned no document"}
			}
			doc = out
		}
		v.stanza.Set(doc, v.major, v.minor)
		log.Debug("upgrade step", "version", v.String(), "transform", v.transform != nil)
		if e.SelfCheck {
			if err := v.ValidateExactly(doc); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

// transformError attributes a transform failure to v.
func (v *Version) transformError(err error) error {
	var trErr *ioerrors.TransformError
	if errors.As(err, &trErr) {
		if trErr.Version == "" {
			trErr.Version = v.String()
		}
		return err
	}
	return &ioerrors.TransformError{Version: v.String(), Message: "transform failed", Cause: err}
}
