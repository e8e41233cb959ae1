package pb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	assert.Equal(t, CodecName, codec.Name())
}

func TestCodecUsesWireNames(t *testing.T) {
	data, err := jsonCodec{}.Marshal(&CheckoutBookRequest{UserID: "u1", CopyID: "c1", LoanDays: 14})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","copyId":"c1","loanDays":14}`, string(data))

	var req UpdateBookRequest
	require.NoError(t, jsonCodec{}.Unmarshal([]byte(`{"id":"c1","condition":"Worn"}`), &req))
	assert.Equal(t, UpdateBookRequest{ID: "c1", Condition: "Worn"}, req)
}

func TestFullMethod(t *testing.T) {
	assert.Equal(t, "/library.v1.LibraryService/CheckoutBook", FullMethod("CheckoutBook"))
}
