package facepb

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
)

func TestWireFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  proto.Message
		want []byte
	}{
		{
			name: "bounding box",
			msg:  &BoundingBox{X: 10, Y: 10, W: 50, H: 50},
			want: []byte{0x08, 0x0a, 0x10, 0x0a, 0x18, 0x32, 0x20, 0x32},
		},
		{
			name: "zero fields are omitted",
			msg:  &BoundingBox{W: 1},
			want: []byte{0x18, 0x01},
		},
		{
			name: "negative int32 is sign extended",
			msg:  &BoundingBox{X: -1},
			want: []byte{0x08, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
		{
			name: "empty header still selects the oneof",
			msg:  &FaceRecognitionRequest{RequestData: &FaceRecognitionRequest_Header{Header: &FaceRecognitionHeader{}}},
			want: []byte{0x0a, 0x00},
		},
		{
			name: "image chunk",
			msg:  &FaceRecognitionRequest{RequestData: &FaceRecognitionRequest_ImageChunk{ImageChunk: &ImageChunk{Content: []byte{0xff, 0xd8}}}},
			want: []byte{0x12, 0x04, 0x0a, 0x02, 0xff, 0xd8},
		},
		{
			name: "identity is packed",
			msg:  &FaceIdentity{Identity: []float64{1.0}},
			want: []byte{0x0a, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0x3f},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := proto.Marshal(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmptyRequestMarshalsToNothing(t *testing.T) {
	got, err := proto.Marshal(&FaceRecognitionRequest{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFaceRecognitionRequest_RoundTrip(t *testing.T) {
	header := &FaceRecognitionRequest{RequestData: &FaceRecognitionRequest_Header{Header: &FaceRecognitionHeader{
		Faces: []*BoundingBox{{X: 1, Y: 2, W: 3, H: 4}, {X: -5, Y: 0, W: 100, H: 200}},
	}}}

	data, err := proto.Marshal(header)
	require.NoError(t, err)

	got := new(FaceRecognitionRequest)
	require.NoError(t, proto.Unmarshal(data, got))
	require.NotNil(t, got.GetHeader())
	assert.Nil(t, got.GetImageChunk())
	assert.True(t, proto.Equal(header, got))
}

func TestFaceIdentity_UnpackedEncoding(t *testing.T) {
	var b []byte
	for _, v := range []float64{0.5, -2.25, math.Pi} {
		b = protowire.AppendTag(b, 1, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v))
	}

	id := new(FaceIdentity)
	require.NoError(t, proto.Unmarshal(b, id))
	assert.Equal(t, []float64{0.5, -2.25, math.Pi}, id.GetIdentity())
}

func TestFaceRecognitionResponse_RoundTrip(t *testing.T) {
	resp := &FaceRecognitionResponse{Identities: []*FaceIdentity{
		{Identity: []float64{0.1, 0.2, 0.3}},
		{},
		{Identity: []float64{math.Inf(-1), 0}},
	}}

	data, err := proto.Marshal(resp)
	require.NoError(t, err)

	got := new(FaceRecognitionResponse)
	require.NoError(t, proto.Unmarshal(data, got))
	require.Len(t, got.GetIdentities(), 3)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, got.Identities[0].GetIdentity())
	assert.Empty(t, got.Identities[1].GetIdentity())
	assert.Equal(t, []float64{math.Inf(-1), 0}, got.Identities[2].GetIdentity())
}

func TestUnmarshal_UnknownFieldsKept(t *testing.T) {
	b := protowire.AppendTag(nil, 9, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	box := new(BoundingBox)
	require.NoError(t, proto.Unmarshal(b, box))
	assert.Equal(t, int32(7), box.GetW())
	assert.NotEmpty(t, box.ProtoReflect().GetUnknown())
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		msg  proto.Message
	}{
		{name: "truncated tag", data: []byte{0x80}, msg: &BoundingBox{}},
		{name: "truncated length", data: []byte{0x0a, 0x05, 0x01}, msg: &FaceRecognitionRequest{}},
		{name: "bad packed length", data: []byte{0x0a, 0x03, 0x01, 0x02, 0x03}, msg: &FaceIdentity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, proto.Unmarshal(tt.data, tt.msg))
		})
	}
}

func TestDescriptorMatchesServiceDesc(t *testing.T) {
	fd := File_face_recognition_proto
	require.NotNil(t, fd)
	assert.Equal(t, "faceid", string(fd.Package()))
	assert.Equal(t, 6, fd.Messages().Len())

	require.Equal(t, 1, fd.Services().Len())
	svc := fd.Services().Get(0)
	assert.Equal(t, FaceRecognition_ServiceDesc.ServiceName, string(svc.FullName()))

	method := svc.Methods().Get(0)
	assert.Equal(t, "RecogniseFace", string(method.Name()))
	assert.True(t, method.IsStreamingClient())
	assert.False(t, method.IsStreamingServer())
	assert.Equal(t, (&FaceRecognitionRequest{}).ProtoReflect().Descriptor(), method.Input())
	assert.Equal(t, (&FaceRecognitionResponse{}).ProtoReflect().Descriptor(), method.Output())

	req := (&FaceRecognitionRequest{}).ProtoReflect().Descriptor()
	require.Equal(t, 1, req.Oneofs().Len())
	assert.Equal(t, "request_data", string(req.Oneofs().Get(0).Name()))
}

func TestGetters_NilSafe(t *testing.T) {
	var req *FaceRecognitionRequest
	assert.Nil(t, req.GetHeader())
	assert.Nil(t, req.GetImageChunk())

	var box *BoundingBox
	assert.Zero(t, box.GetX())

	var chunk *ImageChunk
	assert.Nil(t, chunk.GetContent())
}
