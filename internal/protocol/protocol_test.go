package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestWireShapes(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	require.NoError(t, codec.WriteRequest(NewSetRequest("a", "1")))
	require.Equal(t, `{"Set":{"key":"a","value":"1"}}`+"\n", buf.String())
}

func TestSetResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	require.NoError(t, codec.WriteSetResponse(NewSetOK()))
	require.Equal(t, "\"Ok\"\n", buf.String())

	resp, err := codec.ReadSetResponse()
	require.NoError(t, err)
	require.True(t, resp.OK)
}

func TestRmResponseError(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	require.NoError(t, codec.WriteRmResponse(NewRmErr("Key not found")))
	require.Equal(t, `{"Err":"Key not found"}`+"\n", buf.String())

	resp, err := codec.ReadRmResponse()
	require.NoError(t, err)
	require.False(t, resp.OK)
	require.Equal(t, "Key not found", *resp.Err)
}

func TestGetResponseSomeAndNone(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf)

	value := "1"
	require.NoError(t, codec.WriteGetResponse(NewGetOK(&value)))
	require.Equal(t, `{"Ok":"1"}`+"\n", buf.String())

	buf.Reset()
	require.NoError(t, codec.WriteGetResponse(NewGetOK(nil)))
	require.Equal(t, `{"Ok":null}`+"\n", buf.String())
}

func TestReadRequestDiscriminant(t *testing.T) {
	buf := bytes.NewBufferString(`{"Get":{"key":"a"}}` + "\n")
	codec := NewCodec(buf)

	req, err := codec.ReadRequest()
	require.NoError(t, err)
	require.NotNil(t, req.Get)
	require.Equal(t, "a", req.Get.Key)
	require.Nil(t, req.Set)
	require.Nil(t, req.Rm)
}
