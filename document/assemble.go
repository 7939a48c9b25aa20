package document

import "github.com/mwalczak/flatbatch/record"

// Assemble slices validated lines into typed records: line 0 into the
// header, each interior line into a transaction in input order, the last
// line into the footer. Any field decode failure aborts assembly with a
// ValidationError naming the offending line. After all records are built
// the footer is reconciled against the last transaction's counter; a
// mismatch is reported, never repaired.
func Assemble(lines []string) (*Document, error) {
	header, err := record.DecodeHeader(lines[0])
	if err != nil {
		return nil, NewFieldDecodeError(0, err)
	}

	transactions := make([]record.Transaction, 0, len(lines)-2)
	for i, line := range lines[1 : len(lines)-1] {
		transaction, err := record.DecodeTransaction(line)
		if err != nil {
			return nil, NewFieldDecodeError(i+1, err)
		}
		transactions = append(transactions, transaction)
	}

	footer, err := record.DecodeFooter(lines[len(lines)-1])
	if err != nil {
		return nil, NewFieldDecodeError(len(lines)-1, err)
	}

	if last := transactions[len(transactions)-1].Counter; last != footer.TotalCounter {
		return nil, NewReconciliationError(last, footer.TotalCounter)
	}

	return &Document{
		Header:       header,
		Transactions: transactions,
		Footer:       footer,
	}, nil
}
