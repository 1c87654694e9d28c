package versionedConstants_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

func TestVersionedConstants_OsResourcesForTxType(t *testing.T) {
	t.Parallel()

	vc := versionedConstants.DefaultVersionedConstants()

	t.Run("zero calldata factor leaves the constant", func(t *testing.T) {
		t.Parallel()

		withoutCalldata := vc.OsResourcesForTxType(process.TxTypeDeclare, 0)
		withCalldata := vc.OsResourcesForTxType(process.TxTypeDeclare, 5)

		assert.Equal(t, uint64(2703), withoutCalldata.NSteps)
		assert.Equal(t, uint64(15), withoutCalldata.BuiltinInstanceCounter[process.PedersenBuiltinName])
		assert.Equal(t, uint64(63), withoutCalldata.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
		assert.Equal(t, withoutCalldata, withCalldata)
	})
	t.Run("zero calldata length yields the constant for every type", func(t *testing.T) {
		t.Parallel()

		expectedConstantSteps := map[process.TransactionType]uint64{
			process.TxTypeDeclare:        2703,
			process.TxTypeDeployAccount:  3612,
			process.TxTypeInvokeFunction: 3363,
			process.TxTypeL1Handler:      1068,
		}
		for _, txType := range process.AllTransactionTypes {
			er := vc.OsResourcesForTxType(txType, 0)
			assert.Equal(t, expectedConstantSteps[txType], er.NSteps, string(txType))
		}
	})
	t.Run("calldata factor scales with the calldata length", func(t *testing.T) {
		t.Parallel()

		er := vc.OsResourcesForTxType(process.TxTypeDeployAccount, 2)

		assert.Equal(t, uint64(3612+2*21), er.NSteps)
		assert.Equal(t, uint64(23+2*2), er.BuiltinInstanceCounter[process.PedersenBuiltinName])
		assert.Equal(t, uint64(83), er.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
	})
	t.Run("panics on a transaction type missing from an unvalidated snapshot", func(t *testing.T) {
		t.Parallel()

		partial, err := versionedConstants.CreateTestVersionedConstants(createTestDocument(`{}`))
		require.NoError(t, err)

		assert.Panics(t, func() {
			_ = partial.OsResourcesForTxType(process.TxTypeInvokeFunction, 0)
		})
	})
}

func TestVersionedConstants_OsKzgDaResources(t *testing.T) {
	t.Parallel()

	vc := versionedConstants.DefaultVersionedConstants()
	er := vc.OsKzgDaResources(2)

	// commitment info scaled by the segment length, plus the poseidon hash of
	// the segment: 2/2+1 applications
	assert.Equal(t, uint64(2*113+11+2*8), er.NSteps)
	assert.Equal(t, uint64(2*17), er.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
	assert.Equal(t, uint64(2), er.BuiltinInstanceCounter[process.PoseidonBuiltinName])
}

func TestVersionedConstants_AdditionalOsTxResources(t *testing.T) {
	t.Parallel()

	vc := versionedConstants.DefaultVersionedConstants()

	t.Run("without kzg only the per-type formula applies", func(t *testing.T) {
		t.Parallel()

		er := vc.AdditionalOsTxResources(process.TxTypeInvokeFunction, 3, 10, false)

		assert.Equal(t, uint64(3363+3*8), er.NSteps)
		assert.Equal(t, uint64(0), er.BuiltinInstanceCounter[process.PoseidonBuiltinName])
	})
	t.Run("with kzg the commitment cost is added", func(t *testing.T) {
		t.Parallel()

		withoutKzg := vc.AdditionalOsTxResources(process.TxTypeInvokeFunction, 3, 10, false)
		withKzg := vc.AdditionalOsTxResources(process.TxTypeInvokeFunction, 3, 10, true)
		kzgCost := vc.OsKzgDaResources(10)

		expected := withoutKzg.Clone()
		expected.Add(kzgCost)
		assert.Equal(t, expected.NSteps, withKzg.NSteps)
		assert.Equal(t,
			expected.BuiltinInstanceCounter[process.PoseidonBuiltinName],
			withKzg.BuiltinInstanceCounter[process.PoseidonBuiltinName],
		)
	})
}

func TestVersionedConstants_AdditionalOsSyscallResources(t *testing.T) {
	t.Parallel()

	vc := versionedConstants.DefaultVersionedConstants()

	t.Run("accumulates vector times count", func(t *testing.T) {
		t.Parallel()

		er := vc.AdditionalOsSyscallResources(map[process.SyscallName]uint64{
			process.SyscallStorageRead:  2,
			process.SyscallStorageWrite: 1,
		})

		assert.Equal(t, uint64(2*87+89), er.NSteps)
		assert.Equal(t, uint64(3), er.BuiltinInstanceCounter[process.RangeCheckBuiltinName])
	})
	t.Run("empty counts yield empty resources", func(t *testing.T) {
		t.Parallel()

		er := vc.AdditionalOsSyscallResources(nil)
		assert.True(t, er.IsEmpty())
	})
	t.Run("zero counts are skipped", func(t *testing.T) {
		t.Parallel()

		partial, err := versionedConstants.CreateTestVersionedConstants(createTestDocument(`{}`))
		require.NoError(t, err)

		er := partial.AdditionalOsSyscallResources(map[process.SyscallName]uint64{
			process.SyscallKeccak: 0,
		})
		assert.True(t, er.IsEmpty())
	})
	t.Run("panics on a syscall missing from an unvalidated snapshot", func(t *testing.T) {
		t.Parallel()

		partial, err := versionedConstants.CreateTestVersionedConstants(createTestDocument(`{}`))
		require.NoError(t, err)

		assert.Panics(t, func() {
			_ = partial.AdditionalOsSyscallResources(map[process.SyscallName]uint64{
				process.SyscallKeccak: 1,
			})
		})
	})
}

func TestOsResourcesDocumentSchemas(t *testing.T) {
	t.Parallel()

	createDocumentWithTxsInner := func(txsInnerSection string) []byte {
		return []byte(`{
			"invoke_tx_max_n_steps": 3000000,
			"validate_max_n_steps": 1000000,
			"max_recursion_depth": 50,
			"vm_resource_fee_cost": {},
			"os_constants": {},
			"os_resources": {
				"execute_syscalls": {},
				"execute_txs_inner": ` + txsInnerSection + `,
				"compute_os_kzg_commitment_info": {"n_steps": 113}
			}
		}`)
	}

	t.Run("bare vector reads as constant with zero calldata factor", func(t *testing.T) {
		t.Parallel()

		vc, err := versionedConstants.CreateTestVersionedConstants(createDocumentWithTxsInner(`{
			"Declare": {
				"resources": {"n_steps": 100},
				"deprecated_resources": {"n_steps": 200}
			}
		}`))
		require.NoError(t, err)

		withoutCalldata := vc.OsResourcesForTxType(process.TxTypeDeclare, 0)
		withCalldata := vc.OsResourcesForTxType(process.TxTypeDeclare, 7)
		assert.Equal(t, uint64(200), withoutCalldata.NSteps)
		assert.Equal(t, withoutCalldata, withCalldata)
	})
	t.Run("constant plus factor times calldata length", func(t *testing.T) {
		t.Parallel()

		vc, err := versionedConstants.CreateTestVersionedConstants(createDocumentWithTxsInner(`{
			"Declare": {
				"resources": {
					"constant": {"n_steps": 100},
					"calldata_factor": {"n_steps": 2}
				},
				"deprecated_resources": {
					"constant": {"n_steps": 100},
					"calldata_factor": {"n_steps": 2}
				}
			}
		}`))
		require.NoError(t, err)

		er := vc.OsResourcesForTxType(process.TxTypeDeclare, 10)
		assert.Equal(t, uint64(120), er.NSteps)
	})
	t.Run("constant without calldata factor is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := versionedConstants.CreateTestVersionedConstants(createDocumentWithTxsInner(`{
			"Declare": {
				"resources": {"constant": {"n_steps": 100}},
				"deprecated_resources": {"n_steps": 200}
			}
		}`))
		require.ErrorIs(t, err, process.ErrMalformedConstantsDocument)
	})
	t.Run("entry missing the deprecated schema is malformed", func(t *testing.T) {
		t.Parallel()

		_, err := versionedConstants.CreateTestVersionedConstants(createDocumentWithTxsInner(`{
			"Declare": {
				"resources": {"n_steps": 100}
			}
		}`))
		require.ErrorIs(t, err, process.ErrMalformedConstantsDocument)
	})
}
