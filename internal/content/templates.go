package content

// Paragraph templates. {topic} is the lowercased topic, {city} the city as
// given and {service} the optional service qualifier. Every template stays
// between 70 and 95 words so the body lands inside 600-900 words by
// paragraph count alone.

var introTemplates = []string{
	"More people in {city} are discovering {topic} as part of a balanced routine. Busy schedules, long commutes and warm weather all take a toll on the body, and a good session gives muscles and mind a real chance to reset. This guide explains what to expect, how to prepare and how to find a therapist you can trust. Whether you are a local resident or visiting for a few days, the same simple principles help you get the most from every appointment.",
	"If you have been searching for {topic} in {city}, you are not alone. Demand for professional bodywork keeps growing as locals and travellers look for practical ways to relax, recover and feel better. The good news is that quality care is easier to find than ever. In the sections below we walk through the basics, share advice from experienced therapists and answer the questions people ask most often before they book their first session.",
	"Finding the right approach to {topic} can feel confusing at first. There are many styles, prices and providers, and every website seems to promise the same results. This article cuts through the noise with clear, practical information for anyone in {city}. You will learn how treatments usually work, what a fair price looks like, which questions to ask and how to make sure your experience is safe, comfortable and worth the time you invest.",
	"Wellness is no longer a luxury reserved for resorts, and {topic} is a great example of that shift. Across {city}, trained therapists now offer sessions in studios, hotels and private homes, often with flexible hours. Choosing well still matters, because skill and hygiene vary from one provider to another. Below you will find an honest overview written to help you compare options calmly, avoid common mistakes and enjoy treatments that genuinely support your health.",
}

var serviceTemplates = []string{
	"Many clients pair this with {service}, and it is easy to see why. The two work well together because each supports circulation, eases tension and encourages deeper rest. When you book, mention that you are interested in combining treatments so the therapist can plan the timing properly. A combined session usually needs a little more time, so allow at least ninety minutes and avoid rushing straight back to work or a heavy meal afterwards.",
	"If you are curious about {service}, ask your therapist how it fits into your plan. Experienced practitioners adjust pressure, oils and pace to suit your body rather than following a fixed script. Tell them about injuries, allergies or medical conditions before the session starts. Clear communication is the single biggest factor in a good result, and a professional will always welcome your questions, check in during the treatment and respect any request to change the approach.",
	"Adding {service} to your booking is a simple way to tailor the experience. Some people choose it for relaxation, others for recovery after sport or travel. Whatever the reason, the same rules apply: choose a verified provider, agree on the duration and price beforehand, and drink plenty of water afterwards. Small habits like these make a noticeable difference to how you feel over the following days, and they help the benefits last much longer.",
}

var bodyTemplates = []string{
	"Before your first appointment, take a few minutes to think about what you want from the session. Are you looking for deep relief from tight shoulders, gentle relaxation after a long week, or help recovering from exercise? Sharing this goal helps the therapist choose the right techniques and pressure. It also makes it easier to judge the result afterwards. People who arrive with a clear intention usually leave more satisfied, because the whole session is built around their needs.",
	"Price is one of the first questions people ask. Rates depend on experience, duration, location and whether the therapist travels to you. As a rule, very cheap offers deserve a closer look, because they can mean shortcuts on training or hygiene. On the other hand, the most expensive option is not automatically the best. Compare a few verified profiles, read recent reviews and ask what is included, such as oils, towels and travel time.",
	"Hygiene should never be negotiable. A professional therapist uses clean linen for every client, washes their hands before and after the session and keeps oils and tools in good condition. If you book a home visit, expect them to bring fresh towels and a proper setup. Do not hesitate to ask about these standards when you book. Trustworthy providers are proud of their routines and will happily explain how they keep every client safe.",
	"Communication during the session matters just as much as technique. If the pressure feels too strong, say so straight away. If an area is especially tense, let the therapist know so they can spend more time there. Good practitioners check in regularly without interrupting your relaxation. Remember that discomfort is not the same as benefit. Effective bodywork can feel intense at times, but it should never be painful, and you are always in control.",
	"What you do after the appointment also shapes the result. Drink water, eat something light and avoid intense exercise for the rest of the day. A warm shower can help muscles stay relaxed, while a short walk keeps circulation moving. Some people feel energised, others feel sleepy, and both reactions are normal. Pay attention to how your body responds over the next two days, and share that feedback at your next visit.",
	"Consistency beats intensity for most people. One excellent session feels wonderful, but regular appointments help the body build lasting change. Many clients find that a session every two to four weeks keeps stress under control and prevents small aches from turning into bigger problems. Think of it as maintenance rather than a rescue. Planning ahead also makes booking easier, because popular therapists often fill their weekly calendars several days in advance.",
	"Reviews are useful, but read them carefully. Look for comments that mention specific details, such as punctuality, professionalism and how well the therapist listened. Generic praise tells you little. Pay attention to how providers respond to criticism, because a calm and respectful reply says a lot about their attitude. Verified platforms make this easier by confirming identities and training, which removes much of the guesswork from choosing someone new.",
	"Not every treatment suits every person. Pregnancy, recent surgery, high blood pressure, skin conditions and certain medications can all require an adjusted approach. This does not necessarily mean you should skip treatment, but it does mean you should speak openly with your therapist and, when in doubt, with your doctor. Qualified practitioners know when to modify techniques, when to avoid certain areas and when to recommend a different type of care altogether.",
	"The setting influences how deeply you can relax. Some people prefer the calm atmosphere of a dedicated studio, with soft lighting, quiet music and everything prepared in advance. Others value the convenience of a therapist who comes to their home, villa or hotel room. Neither choice is better in itself. Think about your schedule, your comfort and how easily you can unwind, then choose the option that removes the most stress from your day.",
	"Timing your session well can multiply the benefits. Many clients book in the late afternoon or early evening so they can go straight to rest afterwards. Others prefer a morning appointment before an important day, to arrive calm and focused. Avoid booking immediately after a large meal, and leave a little buffer so you are not rushing. Arriving relaxed, rather than stressed and late, helps the therapist achieve much more in the same amount of time.",
	"Therapists bring different training backgrounds, and it is worth asking about them. Some learned traditional techniques passed down through families, while others completed formal courses and certifications. Many combine both. Experience with your particular concern, whether it is back pain, stress or sports recovery, often matters more than the length of a résumé. A short conversation before booking usually reveals whether their skills and style match what you are looking for today.",
	"Finally, remember that bodywork is only one part of feeling well. Sleep, hydration, movement and stress management all work together. A skilled therapist may suggest simple stretches, posture adjustments or breathing exercises to continue the benefits at home. These small routines take only a few minutes a day, yet they can noticeably extend the relief you feel after each session and help you return to your next appointment in better shape.",
}

var localTemplates = []string{
	"In {city}, options range from small neighbourhood studios to experienced mobile therapists who visit homes, villas and hotels. Traffic and weather can make travel tiring, so many residents now prefer a therapist who comes to them. Availability is usually best on weekday mornings and early afternoons, while evenings and weekends fill up quickly. If you have a specific time in mind, book a day or two ahead to secure the therapist you prefer.",
	"Local knowledge helps when you are booking in {city}. Therapists who live in the area understand the climate, the pace of daily life and the common complaints they see every week, from stiff necks after long drives to tired legs after a day of sightseeing. Many speak several languages and are used to working with both residents and international guests. Ask about travel fees, parking and arrival times when you confirm your booking.",
	"The wellness scene in {city} has grown quickly in recent years. Alongside established spas, you will now find independent therapists with strong reputations built on word of mouth and verified reviews. This variety is good news for clients, because it means more choice in style, price and schedule. It also means it pays to compare a few profiles carefully before deciding, rather than booking the first name that appears in a search.",
	"Whether you live in {city} or are only passing through, it is easy to fit a session into your plans. Many therapists offer flexible appointments, including early mornings for those who like to start the day relaxed and late evenings for people with busy working hours. Hotels and villas in popular areas are used to welcoming visiting therapists, so a home or room visit is usually simple to arrange with a little notice.",
}

var ctaTemplates = []string{
	"Ready to experience {topic} in {city}? Browse verified therapists on IndaStreet, compare profiles, prices and reviews, and book directly through the platform in just a few taps. Every provider is checked before they can accept bookings, and you can chat with them in advance to agree on the details. Choose a time that suits you, relax, and let a trusted professional take care of the rest. Your body will thank you for it.",
	"Take the next step today. On IndaStreet you can find trusted therapists across {city}, see real reviews from other clients and book at a time that works for you, whether that is at a studio, at home or in your hotel. Clear prices, verified profiles and direct chat make the whole process simple. Start browsing now and give yourself the care you deserve this week, without the guesswork or the waiting.",
	"Looking for a reliable place to start? IndaStreet connects you with verified massage and spa professionals in {city} and nearby areas. Read honest reviews, compare services and prices side by side, and message a therapist before you confirm. Booking takes only a minute, and you stay in control of every detail. Discover how good {topic} can feel when it is delivered by someone skilled, friendly and genuinely focused on you.",
	"Your next session is only a few clicks away. Visit IndaStreet to explore therapists and spas across {city}, filter by service, availability and price, and book with confidence. Every profile is verified, every review comes from a real client, and you can always ask questions before you commit. Treat yourself to time that is just for you, and find out why so many people now make regular bodywork part of their routine.",
}

var titlePatterns = []string{
	"{Topic} in {City}: A Complete Guide",
	"{Topic} in {City}: What to Expect",
	"Your Guide to {Topic} in {City}",
	"{Topic} in {City}: Prices, Tips and Best Places",
	"{Topic} in {City} | Trusted Local Guide",
	"Best {Topic} in {City} This Year",
	"{Topic} in {City}: Tips From Local Therapists",
	"A Local Guide to {Topic} in {City}",
}

var descriptionOpenings = []string{
	"Discover {topic} in {city}.",
	"Your local guide to {topic} in {city}.",
	"Everything you need to know about {topic} in {city}.",
	"Planning {topic} in {city}?",
}

var descriptionMiddles = []string{
	"Learn what to expect, typical prices and how to book a verified therapist.",
	"Compare trusted therapists, fair prices and practical booking tips.",
	"Get honest advice on prices, safety and choosing the right therapist.",
}

var descriptionFillers = []string{
	"Home and hotel visits available.",
	"Verified therapists only.",
	"Book online with IndaStreet.",
	"Real reviews from local clients.",
	"Updated for this season.",
}
