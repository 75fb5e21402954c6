package gocrdt

import "go.uber.org/zap"

// Transaction is the scope every mutation (local or remote) runs
// inside (§5, §6 "transact(doc, body, origin, local)"). The codec
// itself treats it as an opaque token passed down to getMissing/
// integrate — this package is both the codec and the transaction
// manager it names as an external collaborator, kept together because
// nothing else in this repo needs to drive a transaction.
type Transaction struct {
	Doc    *Document
	Origin any
	Local  bool
}

// Transact runs body inside a new transaction and logs its outcome.
// Integration never voluntarily yields mid-transaction (§5); a
// transaction only ever completes or returns the error that aborted it.
func (d *Document) Transact(origin any, local bool, body func(txn *Transaction) error) error {
	txn := &Transaction{Doc: d, Origin: origin, Local: local}
	d.logger.Debug("transaction start", zap.Bool("local", local), zap.Any("origin", origin))

	if err := body(txn); err != nil {
		d.logger.Warn("transaction aborted", zap.Error(err))
		return err
	}

	d.logger.Debug("transaction committed")
	return nil
}
