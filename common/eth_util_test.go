package common

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureSelector(t *testing.T) {
	assert.Equal(t, "0xa9059cbb", SignatureSelector("transfer(address,uint256)"))
	assert.Equal(t, "0x095ea7b3", SignatureSelector("approve(address,uint256)"))
}

func TestDataSelector(t *testing.T) {
	assert.Equal(t, "0xa9059cbb", DataSelector([]byte{0xa9, 0x05, 0x9c, 0xbb, 0x00}))
	assert.Empty(t, DataSelector([]byte{0xa9, 0x05}))
}

func TestMethodFromSignature(t *testing.T) {
	m, err := MethodFromSignature("transfer(address,uint256)")
	require.NoError(t, err)
	assert.Equal(t, "transfer", m.Name)
	assert.Equal(t, "transfer(address,uint256)", m.Sig)
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, m.ID)
	assert.Len(t, m.Inputs, 2)

	m, err = MethodFromSignature("execute((address,uint256,bytes)[],bytes)")
	require.NoError(t, err)
	assert.Equal(t, "execute((address,uint256,bytes)[],bytes)", m.Sig)

	_, err = MethodFromSignature("not a signature")
	require.Error(t, err)
}

func TestIsNativeAddress(t *testing.T) {
	assert.True(t, IsNativeAddress(common.Address{}))
	assert.True(t, IsNativeAddress(NativeAddress))
	assert.False(t, IsNativeAddress(common.HexToAddress("0x01")))
}

func TestGetERC20ABI(t *testing.T) {
	a := GetERC20ABI()
	_, found := a.Methods["symbol"]
	assert.True(t, found)
	_, found = a.Methods["decimals"]
	assert.True(t, found)
}

func TestRunParallel(t *testing.T) {
	var count atomic.Int32
	inc := func() error {
		count.Add(1)
		return nil
	}
	require.NoError(t, RunParallel(inc, inc, inc))
	assert.Equal(t, int32(3), count.Load())

	boom := errors.New("boom")
	err := RunParallel(inc, func() error { return boom })
	require.ErrorIs(t, err, boom)
}
