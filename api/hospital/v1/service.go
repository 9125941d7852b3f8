// Package hospitalv1 is the wire contract of hospital.v1.HospitalService:
// message types, the JSON codec, the server descriptor and a typed client.
package hospitalv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "hospital.v1.HospitalService"

// FullMethod returns the "/service/method" path for a method name.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type HospitalServiceServer interface {
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Signup(context.Context, *SignupRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)

	RequestBooking(context.Context, *RequestBookingRequest) (*AppointmentResponse, error)
	ApproveBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error)
	RejectBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error)
	CompleteBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error)
	ListSessionAppointments(context.Context, *ListSessionAppointmentsRequest) (*AppointmentList, error)
	ListBookingQueue(context.Context, *ListBookingQueueRequest) (*AppointmentList, error)
	ListDoctorVisits(context.Context, *ListDoctorVisitsRequest) (*AppointmentList, error)
	ListMyBookings(context.Context, *Empty) (*AppointmentList, error)

	ListDoctors(context.Context, *ListDoctorsRequest) (*DoctorList, error)
	AddDoctor(context.Context, *AddDoctorRequest) (*DoctorResponse, error)
	UpdateDoctor(context.Context, *UpdateDoctorRequest) (*DoctorResponse, error)
	DeleteDoctor(context.Context, *DeleteRequest) (*Empty, error)
	ListSessions(context.Context, *ListSessionsRequest) (*SessionList, error)
	AddSession(context.Context, *AddSessionRequest) (*SessionResponse, error)
	DeleteSession(context.Context, *DeleteRequest) (*Empty, error)
	ListPatients(context.Context, *ListPatientsRequest) (*PatientList, error)
	DeletePatient(context.Context, *DeleteRequest) (*Empty, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*AccountResponse, error)
	DeleteAccount(context.Context, *Empty) (*Empty, error)

	ListNotifications(context.Context, *Empty) (*NotificationList, error)
	MarkNotificationsRead(context.Context, *Empty) (*MarkNotificationsReadResponse, error)
	GetStats(context.Context, *Empty) (*Stats, error)
}

// UnimplementedHospitalServiceServer answers Unimplemented for every method.
// Embed it to stay source compatible as methods are added.
type UnimplementedHospitalServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedHospitalServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedHospitalServiceServer) Signup(context.Context, *SignupRequest) (*LoginResponse, error) {
	return nil, unimplemented("Signup")
}
func (UnimplementedHospitalServiceServer) Logout(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedHospitalServiceServer) RequestBooking(context.Context, *RequestBookingRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("RequestBooking")
}
func (UnimplementedHospitalServiceServer) ApproveBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("ApproveBooking")
}
func (UnimplementedHospitalServiceServer) RejectBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("RejectBooking")
}
func (UnimplementedHospitalServiceServer) CompleteBooking(context.Context, *BookingActionRequest) (*AppointmentResponse, error) {
	return nil, unimplemented("CompleteBooking")
}
func (UnimplementedHospitalServiceServer) ListSessionAppointments(context.Context, *ListSessionAppointmentsRequest) (*AppointmentList, error) {
	return nil, unimplemented("ListSessionAppointments")
}
func (UnimplementedHospitalServiceServer) ListBookingQueue(context.Context, *ListBookingQueueRequest) (*AppointmentList, error) {
	return nil, unimplemented("ListBookingQueue")
}
func (UnimplementedHospitalServiceServer) ListDoctorVisits(context.Context, *ListDoctorVisitsRequest) (*AppointmentList, error) {
	return nil, unimplemented("ListDoctorVisits")
}
func (UnimplementedHospitalServiceServer) ListMyBookings(context.Context, *Empty) (*AppointmentList, error) {
	return nil, unimplemented("ListMyBookings")
}
func (UnimplementedHospitalServiceServer) ListDoctors(context.Context, *ListDoctorsRequest) (*DoctorList, error) {
	return nil, unimplemented("ListDoctors")
}
func (UnimplementedHospitalServiceServer) AddDoctor(context.Context, *AddDoctorRequest) (*DoctorResponse, error) {
	return nil, unimplemented("AddDoctor")
}
func (UnimplementedHospitalServiceServer) UpdateDoctor(context.Context, *UpdateDoctorRequest) (*DoctorResponse, error) {
	return nil, unimplemented("UpdateDoctor")
}
func (UnimplementedHospitalServiceServer) DeleteDoctor(context.Context, *DeleteRequest) (*Empty, error) {
	return nil, unimplemented("DeleteDoctor")
}
func (UnimplementedHospitalServiceServer) ListSessions(context.Context, *ListSessionsRequest) (*SessionList, error) {
	return nil, unimplemented("ListSessions")
}
func (UnimplementedHospitalServiceServer) AddSession(context.Context, *AddSessionRequest) (*SessionResponse, error) {
	return nil, unimplemented("AddSession")
}
func (UnimplementedHospitalServiceServer) DeleteSession(context.Context, *DeleteRequest) (*Empty, error) {
	return nil, unimplemented("DeleteSession")
}
func (UnimplementedHospitalServiceServer) ListPatients(context.Context, *ListPatientsRequest) (*PatientList, error) {
	return nil, unimplemented("ListPatients")
}
func (UnimplementedHospitalServiceServer) DeletePatient(context.Context, *DeleteRequest) (*Empty, error) {
	return nil, unimplemented("DeletePatient")
}
func (UnimplementedHospitalServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*AccountResponse, error) {
	return nil, unimplemented("UpdateProfile")
}
func (UnimplementedHospitalServiceServer) DeleteAccount(context.Context, *Empty) (*Empty, error) {
	return nil, unimplemented("DeleteAccount")
}
func (UnimplementedHospitalServiceServer) ListNotifications(context.Context, *Empty) (*NotificationList, error) {
	return nil, unimplemented("ListNotifications")
}
func (UnimplementedHospitalServiceServer) MarkNotificationsRead(context.Context, *Empty) (*MarkNotificationsReadResponse, error) {
	return nil, unimplemented("MarkNotificationsRead")
}
func (UnimplementedHospitalServiceServer) GetStats(context.Context, *Empty) (*Stats, error) {
	return nil, unimplemented("GetStats")
}

// unary builds the method descriptor for one RPC from its interface
// method expression.
func unary[Req, Resp any](name string, call func(HospitalServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(HospitalServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HospitalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Login", HospitalServiceServer.Login),
		unary("Signup", HospitalServiceServer.Signup),
		unary("Logout", HospitalServiceServer.Logout),
		unary("RequestBooking", HospitalServiceServer.RequestBooking),
		unary("ApproveBooking", HospitalServiceServer.ApproveBooking),
		unary("RejectBooking", HospitalServiceServer.RejectBooking),
		unary("CompleteBooking", HospitalServiceServer.CompleteBooking),
		unary("ListSessionAppointments", HospitalServiceServer.ListSessionAppointments),
		unary("ListBookingQueue", HospitalServiceServer.ListBookingQueue),
		unary("ListDoctorVisits", HospitalServiceServer.ListDoctorVisits),
		unary("ListMyBookings", HospitalServiceServer.ListMyBookings),
		unary("ListDoctors", HospitalServiceServer.ListDoctors),
		unary("AddDoctor", HospitalServiceServer.AddDoctor),
		unary("UpdateDoctor", HospitalServiceServer.UpdateDoctor),
		unary("DeleteDoctor", HospitalServiceServer.DeleteDoctor),
		unary("ListSessions", HospitalServiceServer.ListSessions),
		unary("AddSession", HospitalServiceServer.AddSession),
		unary("DeleteSession", HospitalServiceServer.DeleteSession),
		unary("ListPatients", HospitalServiceServer.ListPatients),
		unary("DeletePatient", HospitalServiceServer.DeletePatient),
		unary("UpdateProfile", HospitalServiceServer.UpdateProfile),
		unary("DeleteAccount", HospitalServiceServer.DeleteAccount),
		unary("ListNotifications", HospitalServiceServer.ListNotifications),
		unary("MarkNotificationsRead", HospitalServiceServer.MarkNotificationsRead),
		unary("GetStats", HospitalServiceServer.GetStats),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hospital/v1/hospital.proto",
}

func RegisterHospitalServiceServer(s grpc.ServiceRegistrar, srv HospitalServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// HospitalServiceClient calls the service over a connection that has the
// JSON codec available. Only the calls used outside the server are typed
// here; Invoke reaches the rest.
type HospitalServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHospitalServiceClient(cc grpc.ClientConnInterface) *HospitalServiceClient {
	return &HospitalServiceClient{cc: cc}
}

// Invoke calls any method by name with the JSON content-subtype.
func Invoke[Req, Resp any](ctx context.Context, c *HospitalServiceClient, method string, in *Req, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HospitalServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return Invoke[LoginRequest, LoginResponse](ctx, c, "Login", in, opts...)
}

func (c *HospitalServiceClient) RequestBooking(ctx context.Context, in *RequestBookingRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return Invoke[RequestBookingRequest, AppointmentResponse](ctx, c, "RequestBooking", in, opts...)
}

func (c *HospitalServiceClient) ApproveBooking(ctx context.Context, in *BookingActionRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return Invoke[BookingActionRequest, AppointmentResponse](ctx, c, "ApproveBooking", in, opts...)
}

func (c *HospitalServiceClient) ListNotifications(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*NotificationList, error) {
	return Invoke[Empty, NotificationList](ctx, c, "ListNotifications", in, opts...)
}
